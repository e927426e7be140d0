package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// rodDefaultTimeout matches the Playwright default so both drivers fail at the same point
const rodDefaultTimeout = 30 * time.Second

// RodDriver launches Chromium through go-rod's launcher
type RodDriver struct {
	// Bin overrides the browser binary; CHROME_BIN is used when empty
	Bin string
}

// NewRodDriver creates a rod-backed driver
func NewRodDriver() *RodDriver {
	return &RodDriver{Bin: os.Getenv("CHROME_BIN")}
}

// Name returns the driver name
func (d *RodDriver) Name() string {
	return "rod"
}

// Open launches Chromium and creates one page sized to the viewport
func (d *RodDriver) Open(ctx context.Context, opts Options) (Session, error) {
	l := launcher.New().
		Headless(opts.Headless).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("disable-dev-shm-usage")
	if d.Bin != "" {
		l = l.Bin(d.Bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width,
		Height:            opts.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to set viewport: %w", err)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = rodDefaultTimeout
	}

	return &rodSession{launcher: l, browser: browser, page: page, timeout: timeout}, nil
}

type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	timeout  time.Duration
}

// withTimeout runs fn against a page clone bounded by the session timeout.
// Elements found inside fn must not be used after it returns.
func (s *rodSession) withTimeout(fn func(p *rod.Page) error) error {
	p := s.page.Timeout(s.timeout)
	defer p.CancelTimeout()
	return fn(p)
}

// roleNameJS selects elements carrying role css whose accessible name contains name.
// The name comes from aria-label when present, otherwise from the rendered text.
const roleNameJS = `(css, name, all) => {
	const want = name.toLowerCase();
	const named = el => ((el.getAttribute('aria-label') || el.innerText || el.value || '').toLowerCase().includes(want));
	const found = Array.from(document.querySelectorAll(css)).filter(named);
	return all ? found : (found[0] || null);
}`

// find waits for the first element matching l
func find(p *rod.Page, l Locator) (*rod.Element, error) {
	switch l.Kind {
	case KindRole:
		return p.ElementByJS(rod.Eval(roleNameJS, roleCSS(l.Role), l.Name, false))
	case KindText:
		return p.ElementX(textXPath(l.Text))
	default:
		return p.Element(l.Selector)
	}
}

// findAll returns the current matches for l without waiting
func findAll(p *rod.Page, l Locator) (rod.Elements, error) {
	switch l.Kind {
	case KindRole:
		return p.ElementsByJS(rod.Eval(roleNameJS, roleCSS(l.Role), l.Name, true))
	case KindText:
		return p.ElementsX(textXPath(l.Text))
	default:
		return p.Elements(l.Selector)
	}
}

func (s *rodSession) Goto(url string) error {
	return s.withTimeout(func(p *rod.Page) error {
		if err := p.Navigate(url); err != nil {
			return fmt.Errorf("failed to navigate to %s: %w", url, err)
		}
		if err := p.WaitLoad(); err != nil {
			return fmt.Errorf("failed waiting for %s to load: %w", url, err)
		}
		return nil
	})
}

func (s *rodSession) Click(l Locator) error {
	return s.withTimeout(func(p *rod.Page) error {
		el, err := find(p, l)
		if err != nil {
			return fmt.Errorf("failed to find %s: %w", l, err)
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return fmt.Errorf("failed to click %s: %w", l, err)
		}
		return nil
	})
}

func (s *rodSession) WaitFor(l Locator) error {
	return s.withTimeout(func(p *rod.Page) error {
		el, err := find(p, l)
		if err != nil {
			return fmt.Errorf("failed waiting for %s: %w", l, err)
		}
		if err := el.WaitVisible(); err != nil {
			return fmt.Errorf("failed waiting for %s to be visible: %w", l, err)
		}
		return nil
	})
}

func (s *rodSession) Count(l Locator) (int, error) {
	var n int
	err := s.withTimeout(func(p *rod.Page) error {
		els, err := findAll(p, l)
		if err != nil {
			return fmt.Errorf("failed to count %s: %w", l, err)
		}
		n = len(els)
		return nil
	})
	return n, err
}

func (s *rodSession) Visible(l Locator) (bool, error) {
	var visible bool
	err := s.withTimeout(func(p *rod.Page) error {
		els, err := findAll(p, l)
		if err != nil {
			return fmt.Errorf("failed to check visibility of %s: %w", l, err)
		}
		if els.Empty() {
			return nil
		}
		visible, err = els.First().Visible()
		if err != nil {
			return fmt.Errorf("failed to check visibility of %s: %w", l, err)
		}
		return nil
	})
	return visible, err
}

func (s *rodSession) Attribute(l Locator, name string) (string, bool, error) {
	var (
		value   string
		present bool
	)
	err := s.withTimeout(func(p *rod.Page) error {
		el, err := find(p, l)
		if err != nil {
			return fmt.Errorf("failed to find %s: %w", l, err)
		}
		attr, err := el.Attribute(name)
		if err != nil {
			return fmt.Errorf("failed to read %s of %s: %w", name, l, err)
		}
		if attr != nil {
			value, present = *attr, true
		}
		return nil
	})
	return value, present, err
}

func (s *rodSession) InnerText(l Locator) (string, error) {
	var text string
	err := s.withTimeout(func(p *rod.Page) error {
		el, err := find(p, l)
		if err != nil {
			return fmt.Errorf("failed to find %s: %w", l, err)
		}
		text, err = el.Text()
		if err != nil {
			return fmt.Errorf("failed to read text of %s: %w", l, err)
		}
		return nil
	})
	return text, err
}

func (s *rodSession) Screenshot(path string) error {
	return s.withTimeout(func(p *rod.Page) error {
		data, err := p.Screenshot(false, &proto.PageCaptureScreenshot{
			Format: proto.PageCaptureScreenshotFormatPng,
		})
		if err != nil {
			return fmt.Errorf("failed to capture screenshot %s: %w", path, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write screenshot %s: %w", path, err)
		}
		return nil
	})
}

func (s *rodSession) Close() error {
	var errs []error
	if err := s.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
	}
	s.launcher.Cleanup()
	return errors.Join(errs...)
}
