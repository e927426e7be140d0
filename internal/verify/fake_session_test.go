package verify

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/themizzi/uxverify/internal/browser"
)

// fakeElement is the state of one locator in a fakeSession
type fakeElement struct {
	count   int
	visible bool
	attrs   map[string]string
	text    string
}

// fakeSession is an in-memory browser.Session keyed by Locator.String()
type fakeSession struct {
	elements  map[string]*fakeElement
	gotoErr   error
	calls     []string
	visited   []string
	closed    bool
	closeErr  error
	shotBytes []byte
}

// newHealthyApp returns a session whose page satisfies the whole accessibility contract
func newHealthyApp() *fakeSession {
	return &fakeSession{
		shotBytes: []byte("\x89PNG fake"),
		elements: map[string]*fakeElement{
			browser.ByRole("button", MultiplayerButton).String(): {count: 1, visible: true},
			browser.ByText(LobbyHeading).String():                {count: 1, visible: true},
			browser.ByCSS(RefreshSelector).String():              {count: 1, visible: true},
			browser.ByText(EmptyStateText).String():              {count: 1, visible: true},
			browser.ByCSS(DialogSelector).String(): {count: 1, visible: true, attrs: map[string]string{
				"role":            "dialog",
				"aria-modal":      "true",
				"aria-labelledby": ExpectedLabelledBy,
			}},
			browser.ByID(ExpectedLabelledBy).String(): {count: 1, visible: true, text: ExpectedTitle},
			browser.ByCSS(RoomNameInput).String():      {count: 1, visible: true},
			browser.ByCSS(RoomNameLabel).String():      {count: 1, visible: true, text: "Room Name"},
		},
	}
}

func (f *fakeSession) element(l browser.Locator) (*fakeElement, bool) {
	el, ok := f.elements[l.String()]
	if !ok || el.count == 0 {
		return nil, false
	}
	return el, true
}

func (f *fakeSession) remove(l browser.Locator) {
	delete(f.elements, l.String())
}

func (f *fakeSession) Goto(url string) error {
	f.calls = append(f.calls, "goto")
	f.visited = append(f.visited, url)
	return f.gotoErr
}

func (f *fakeSession) Click(l browser.Locator) error {
	f.calls = append(f.calls, "click "+l.String())
	el, ok := f.element(l)
	if !ok || !el.visible {
		return fmt.Errorf("timeout waiting for %s to be actionable", l)
	}
	return nil
}

func (f *fakeSession) WaitFor(l browser.Locator) error {
	f.calls = append(f.calls, "wait "+l.String())
	el, ok := f.element(l)
	if !ok || !el.visible {
		return fmt.Errorf("timeout waiting for %s", l)
	}
	return nil
}

func (f *fakeSession) Count(l browser.Locator) (int, error) {
	f.calls = append(f.calls, "count "+l.String())
	el, ok := f.element(l)
	if !ok {
		return 0, nil
	}
	return el.count, nil
}

func (f *fakeSession) Visible(l browser.Locator) (bool, error) {
	f.calls = append(f.calls, "visible "+l.String())
	el, ok := f.element(l)
	return ok && el.visible, nil
}

func (f *fakeSession) Attribute(l browser.Locator, name string) (string, bool, error) {
	el, ok := f.element(l)
	if !ok {
		return "", false, fmt.Errorf("timeout waiting for %s", l)
	}
	v, present := el.attrs[name]
	return v, present, nil
}

func (f *fakeSession) InnerText(l browser.Locator) (string, error) {
	el, ok := f.element(l)
	if !ok {
		return "", fmt.Errorf("timeout waiting for %s", l)
	}
	return el.text, nil
}

func (f *fakeSession) Screenshot(path string) error {
	f.calls = append(f.calls, "screenshot "+path)
	return os.WriteFile(path, f.shotBytes, 0o644)
}

func (f *fakeSession) Close() error {
	f.closed = true
	return f.closeErr
}

// fakeDriver hands out a prepared session
type fakeDriver struct {
	session *fakeSession
	openErr error
	opened  []browser.Options
}

func (d *fakeDriver) Name() string { return "fake" }

func (d *fakeDriver) Open(ctx context.Context, opts browser.Options) (browser.Session, error) {
	d.opened = append(d.opened, opts)
	if d.openErr != nil {
		return nil, d.openErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.session == nil {
		return nil, errors.New("no session prepared")
	}
	return d.session, nil
}
