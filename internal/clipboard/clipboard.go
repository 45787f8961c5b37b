// Package clipboard provides the copy primitive used on the payment step.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Writer copies text somewhere the user can paste it from.
type Writer interface {
	Write(text string) error
}

// ErrUnsupported is returned when no system clipboard tool is available.
var ErrUnsupported = errors.New("clipboard: no system clipboard available")

// System writes through the OS clipboard (pbcopy, xclip, wl-copy, ...).
type System struct{}

func (System) Write(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// OSC52 asks the terminal to set its clipboard with an OSC 52 escape. It
// works over SSH but the terminal may silently ignore it.
type OSC52 struct {
	Out io.Writer
	// Env looks up environment variables; os.Getenv when nil.
	Env func(string) string
}

func (o OSC52) Write(text string) error {
	out := o.Out
	if out == nil {
		out = os.Stderr
	}
	getenv := o.Env
	if getenv == nil {
		getenv = os.Getenv
	}
	seq := osc52.New(text)
	switch {
	case getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(out); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}

// Chain tries each writer in order and stops at the first success.
type Chain []Writer

func (c Chain) Write(text string) error {
	var errs []error
	for _, w := range c {
		err := w.Write(text)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return ErrUnsupported
	}
	return errors.Join(errs...)
}

// New picks a writer by mode: "system", "osc52" or "auto" (system, then
// OSC 52).
func New(mode string) (Writer, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "system":
		return System{}, nil
	case "osc52":
		return OSC52{}, nil
	case "", "auto":
		return Chain{System{}, OSC52{}}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard mode %q", mode)
	}
}
