package adapter

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// runner starts an external command without waiting for it
type runner func(name string, args ...string) error

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// defaultOpeners maps each platform to its URL handler invocation
var defaultOpeners = map[string][]string{
	"darwin":  {"open"},
	"windows": {"cmd", "/c", "start", ""},
	"linux":   {"xdg-open"},
}

// Launcher opens links (trailer searches) in the configured command or the system default handler
type Launcher struct {
	command string   // configured command, empty for system default
	args    []string // additional arguments placed before the URL
	goos    string
	run     runner
	logger  *slog.Logger
}

// NewLauncher creates a new Launcher
func NewLauncher(cfg OpenerConfig, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: cfg.Command,
		args:    cfg.Args,
		goos:    runtime.GOOS,
		run:     startCommand,
		logger:  logger,
	}
}

// Launch opens link. Only absolute http(s) URLs are accepted.
func (l *Launcher) Launch(link string) error {
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not an http(s) URL", link)
	}

	name, args := l.commandLine(link)
	l.logger.Info("opening link", "command", name, "args", args)

	if err := l.run(name, args...); err != nil {
		l.logger.Error("failed to open link", "command", name, "error", err)
		return fmt.Errorf("failed to open link with %s: %w", name, err)
	}
	return nil
}

// commandLine resolves the command and arguments used to open link
func (l *Launcher) commandLine(link string) (string, []string) {
	if l.command != "" {
		args := append(append([]string{}, l.args...), link)
		return l.command, args
	}

	opener, ok := defaultOpeners[l.goos]
	if !ok {
		// Other Unix-like systems
		opener = defaultOpeners["linux"]
	}
	args := append(append([]string{}, opener[1:]...), link)
	return opener[0], args
}
