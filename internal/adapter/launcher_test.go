package adapter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCommand struct {
	name string
	args []string
}

func newTestLauncher(cfg OpenerConfig, goos string, fail error) (*Launcher, *[]recordedCommand) {
	var calls []recordedCommand
	l := NewLauncher(cfg, NullLogger())
	l.goos = goos
	l.run = func(name string, args ...string) error {
		calls = append(calls, recordedCommand{name: name, args: args})
		return fail
	}
	return l, &calls
}

func TestLauncher_SystemDefault(t *testing.T) {
	const link = "https://www.youtube.com/results?search_query=dune+trailer"

	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{goos: "linux", wantName: "xdg-open", wantArgs: []string{link}},
		{goos: "freebsd", wantName: "xdg-open", wantArgs: []string{link}},
		{goos: "darwin", wantName: "open", wantArgs: []string{link}},
		{goos: "windows", wantName: "cmd", wantArgs: []string{"/c", "start", "", link}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			l, calls := newTestLauncher(OpenerConfig{}, tt.goos, nil)

			require.NoError(t, l.Launch(link))
			require.Len(t, *calls, 1)
			assert.Equal(t, tt.wantName, (*calls)[0].name)
			assert.Equal(t, tt.wantArgs, (*calls)[0].args)
		})
	}
}

func TestLauncher_ConfiguredCommand(t *testing.T) {
	l, calls := newTestLauncher(OpenerConfig{Command: "firefox", Args: []string{"--new-tab"}}, "linux", nil)

	require.NoError(t, l.Launch("https://example.com/a"))
	require.Len(t, *calls, 1)
	assert.Equal(t, "firefox", (*calls)[0].name)
	assert.Equal(t, []string{"--new-tab", "https://example.com/a"}, (*calls)[0].args)

	// Configured args are not mutated across launches
	require.NoError(t, l.Launch("https://example.com/b"))
	assert.Equal(t, []string{"--new-tab", "https://example.com/b"}, (*calls)[1].args)
}

func TestLauncher_RejectsNonHTTP(t *testing.T) {
	l, calls := newTestLauncher(OpenerConfig{}, "linux", nil)

	for _, link := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "not a url"} {
		assert.Error(t, l.Launch(link), "link %q", link)
	}
	assert.Empty(t, *calls)
}

func TestLauncher_CommandFailure(t *testing.T) {
	l, _ := newTestLauncher(OpenerConfig{}, "linux", errors.New("exec: not found"))

	err := l.Launch("https://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xdg-open")
}
