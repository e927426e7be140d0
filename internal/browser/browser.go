// Package browser abstracts the headless browser behind a small Session interface.
// Two drivers are provided: playwright-go (Chromium via the Playwright driver) and go-rod
// (Chromium via the DevTools protocol).
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownDriver is returned by NewDriver for an unsupported driver name
var ErrUnknownDriver = errors.New("unknown browser driver")

// Options configures a browser session
type Options struct {
	Width    int
	Height   int
	Headless bool
	// Timeout bounds every waiting operation; zero keeps the driver default
	Timeout time.Duration
}

// Session is one browser with one page, owned by a single run.
// Locators are resolved against the current page state on every call.
type Session interface {
	Goto(url string) error
	// Click waits for the element to be actionable, then clicks it
	Click(l Locator) error
	// WaitFor blocks until the element is visible
	WaitFor(l Locator) error
	// Count returns the number of matches without waiting
	Count(l Locator) (int, error)
	// Visible reports whether the element is currently visible without waiting
	Visible(l Locator) (bool, error)
	// Attribute reads an attribute; present is false when the attribute is absent
	Attribute(l Locator, name string) (value string, present bool, err error)
	InnerText(l Locator) (string, error)
	Screenshot(path string) error
	Close() error
}

// Driver launches browser sessions
type Driver interface {
	Name() string
	Open(ctx context.Context, opts Options) (Session, error)
}

// NewDriver returns the driver registered under name
func NewDriver(name string) (Driver, error) {
	switch name {
	case "playwright":
		return NewPlaywrightDriver(), nil
	case "rod":
		return NewRodDriver(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}
}
