package store

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/mmcdole/cinedex/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// openers builds each driver against a fresh temp dir
var openers = map[string]func(t *testing.T, dir string) domain.BookmarkStorage{
	"bolt": func(t *testing.T, dir string) domain.BookmarkStorage {
		s, err := Open("bolt", filepath.Join(dir, "bookmarks.db"), testLogger())
		require.NoError(t, err)
		return s
	},
	"sqlite": func(t *testing.T, dir string) domain.BookmarkStorage {
		s, err := Open("sqlite", filepath.Join(dir, "bookmarks.sqlite"), testLogger())
		require.NoError(t, err)
		return s
	},
}

func TestStorage_LoadAbsent(t *testing.T) {
	for name, open := range openers {
		t.Run(name, func(t *testing.T) {
			s := open(t, t.TempDir())
			defer s.Close()

			data, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.Nil(t, data)
		})
	}
}

func TestStorage_SaveOverwritesAndPersists(t *testing.T) {
	ctx := context.Background()

	for name, open := range openers {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()

			s := open(t, dir)
			require.NoError(t, s.Save(ctx, []byte(`[{"id":"movie-tt1"}]`)))
			require.NoError(t, s.Save(ctx, []byte(`[]`)))
			require.NoError(t, s.Save(ctx, []byte(`[{"id":"series-tt2"}]`)))

			data, err := s.Load(ctx)
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":"series-tt2"}]`, string(data))
			require.NoError(t, s.Close())

			// A fresh handle sees the last write
			reopened := open(t, dir)
			defer reopened.Close()
			data, err = reopened.Load(ctx)
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":"series-tt2"}]`, string(data))
		})
	}
}

func TestStorage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, open := range openers {
		t.Run(name, func(t *testing.T) {
			s := open(t, t.TempDir())
			defer s.Close()

			assert.Error(t, s.Save(ctx, []byte(`[]`)))
		})
	}
}

func TestBoltStore_MemoryOnly(t *testing.T) {
	ctx := context.Background()
	s, err := Open("memory", "", testLogger())
	require.NoError(t, err)

	data, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, s.Save(ctx, []byte(`[1]`)))
	data, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), data)
	assert.NoError(t, s.Close())
}

func TestBoltStore_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s, err := NewBoltStore("", testLogger())
	require.NoError(t, err)

	in := []byte(`[1]`)
	require.NoError(t, s.Save(ctx, in))
	in[1] = '9'

	out, err := s.Load(ctx)
	require.NoError(t, err)
	out[1] = '7'

	again, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), again)
}

func TestBoltStore_SaveAfterCloseFails(t *testing.T) {
	ctx := context.Background()
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "b.db"), testLogger())
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, []byte(`[]`)))
	require.NoError(t, s.Close())

	require.Error(t, s.Save(ctx, []byte(`[1]`)))

	// The failed write is not visible through the cache
	data, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open("redis", "/tmp/x", testLogger())
	assert.ErrorContains(t, err, "unknown storage driver")

	_, err = Open("bolt", "", testLogger())
	assert.Error(t, err)

	_, err = Open("sqlite", "", testLogger())
	assert.Error(t, err)
}
