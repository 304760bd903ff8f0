// Package launcher hands outbound promo links to the operating system.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"sync"

	"github.com/atotto/clipboard"
)

var (
	ErrUnsupported = errors.New("opening links is not supported on this platform")
	ErrBadURL      = errors.New("only absolute http(s) links can be opened")
)

// Opener opens a URL outside the terminal.
type Opener interface {
	Open(ctx context.Context, target string) error
}

// Clipboard copies text to the system clipboard.
type Clipboard interface {
	Copy(text string) error
}

// OSOpener starts the platform's URL handler and does not wait for it.
type OSOpener struct {
	goos    string
	command func(name string, args ...string) *exec.Cmd
}

func NewOSOpener() *OSOpener {
	return &OSOpener{goos: runtime.GOOS, command: exec.Command}
}

func (o *OSOpener) Open(_ context.Context, target string) error {
	if err := checkURL(target); err != nil {
		return err
	}
	name, args, err := openCommand(o.goos, target)
	if err != nil {
		return err
	}
	cmd := o.command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open external target: %w", err)
	}
	// reap the child; the handler's exit status is not interesting
	go func() { _ = cmd.Wait() }()
	return nil
}

func openCommand(goos, target string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{target}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupported, goos)
	}
}

func checkURL(target string) error {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrBadURL, target)
	}
	return nil
}

// SystemClipboard writes through atotto/clipboard.
type SystemClipboard struct{}

func (SystemClipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility available")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

// DisabledOpener refuses every link. It is used when link opening is
// switched off in the config.
type DisabledOpener struct{}

func (DisabledOpener) Open(context.Context, string) error {
	return errors.New("opening links is disabled (set open_links: true)")
}

// Recorder remembers what it was asked to open or copy. Tests use it in
// place of the OS handlers.
type Recorder struct {
	mu     sync.Mutex
	Opened []string
	Copied []string
	Err    error
}

func (r *Recorder) Open(_ context.Context, target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Opened = append(r.Opened, target)
	return nil
}

func (r *Recorder) Copy(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Copied = append(r.Copied, text)
	return nil
}
