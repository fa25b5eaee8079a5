package bookmark

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mmcdole/cinedex/internal/domain"
)

// record is the durable JSON form of a bookmark.
// Type is a pointer so a missing "type" is told apart from a movie.
type record struct {
	ID         string              `json:"id"`
	ExternalID string              `json:"imdbId" validate:"required"`
	Type       *domain.ContentType `json:"type"`
	Title      string              `json:"title" validate:"required"`
	Poster     *string             `json:"poster"` // null when there is no poster
	Year       string              `json:"year"`
	AddedAt    *time.Time          `json:"addedAt,omitempty"`
}

var recordValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json names in validation errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func toRecord(b domain.Bookmark) record {
	t := b.Type
	r := record{
		ID:         b.ID,
		ExternalID: b.ExternalID,
		Type:       &t,
		Title:      b.Title,
		Year:       b.Year,
	}
	if b.PosterURL != "" {
		poster := b.PosterURL
		r.Poster = &poster
	}
	if !b.AddedAt.IsZero() {
		added := b.AddedAt.UTC()
		r.AddedAt = &added
	}
	return r
}

// bookmark converts a validated record
func (r record) bookmark() domain.Bookmark {
	b := domain.Bookmark{
		// The id is derived, never trusted from input
		ID:         domain.BookmarkID(*r.Type, r.ExternalID),
		ExternalID: r.ExternalID,
		Type:       *r.Type,
		Title:      r.Title,
		Year:       r.Year,
	}
	if r.Poster != nil {
		b.PosterURL = *r.Poster
	}
	if r.AddedAt != nil {
		b.AddedAt = *r.AddedAt
	}
	return b
}

func (r record) validate() error {
	if err := recordValidator.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("field %s failed %q", verrs[0].Field(), verrs[0].Tag())
		}
		return err
	}
	if strings.TrimSpace(r.ExternalID) == "" {
		return errors.New("field imdbId is blank")
	}
	if r.Type == nil || !r.Type.Valid() {
		return domain.ErrInvalidContentType
	}
	return nil
}

// validateBookmark applies the load-time rules to b so the store never
// writes a record it would later reject
func validateBookmark(b domain.Bookmark) error {
	if err := toRecord(b).validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidBookmark, err)
	}
	return nil
}

// encode serializes the full set; an empty set is "[]"
func encode(items []domain.Bookmark) ([]byte, error) {
	records := make([]record, len(items))
	for i, b := range items {
		records[i] = toRecord(b)
	}
	return json.Marshal(records)
}

// decodeRecords parses and validates a JSON array of bookmarks.
// Errors are reported against the index of the offending element.
func decodeRecords(data []byte) ([]domain.Bookmark, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	items := make([]domain.Bookmark, 0, len(records))
	for i, r := range records {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("bookmark %d: %w", i, err)
		}
		items = append(items, r.bookmark())
	}
	return items, nil
}

// dedupe keeps the first bookmark per (ExternalID, Type), preserving order
func dedupe(items []domain.Bookmark) []domain.Bookmark {
	seen := make(map[domain.ItemKey]struct{}, len(items))
	out := make([]domain.Bookmark, 0, len(items))
	for _, b := range items {
		key := b.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		b.ID = domain.BookmarkID(b.Type, b.ExternalID)
		out = append(out, b)
	}
	return out
}
