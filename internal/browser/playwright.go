package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightDriver launches Chromium through playwright-go
type PlaywrightDriver struct{}

// NewPlaywrightDriver creates a playwright-backed driver
func NewPlaywrightDriver() *PlaywrightDriver {
	return &PlaywrightDriver{}
}

// Name returns the driver name
func (d *PlaywrightDriver) Name() string {
	return "playwright"
}

// InstallBrowsers downloads the Playwright driver and Chromium
func InstallBrowsers() error {
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		return fmt.Errorf("failed to install playwright browsers: %w", err)
	}
	return nil
}

// Open starts Playwright, launches Chromium and creates one page in a fresh context
func (d *PlaywrightDriver) Open(ctx context.Context, opts Options) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: opts.Width, Height: opts.Height},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	if opts.Timeout > 0 {
		page.SetDefaultTimeout(float64(opts.Timeout.Milliseconds()))
		page.SetDefaultNavigationTimeout(float64(opts.Timeout.Milliseconds()))
	}

	return &playwrightSession{pw: pw, browser: browser, page: page}, nil
}

type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
}

func (s *playwrightSession) locator(l Locator) playwright.Locator {
	switch l.Kind {
	case KindRole:
		return s.page.GetByRole(playwright.AriaRole(l.Role), playwright.PageGetByRoleOptions{
			Name: l.Name,
		})
	case KindText:
		return s.page.GetByText(l.Text)
	default:
		return s.page.Locator(l.Selector)
	}
}

func (s *playwrightSession) Goto(url string) error {
	if _, err := s.page.Goto(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (s *playwrightSession) Click(l Locator) error {
	if err := s.locator(l).Click(); err != nil {
		return fmt.Errorf("failed to click %s: %w", l, err)
	}
	return nil
}

func (s *playwrightSession) WaitFor(l Locator) error {
	// First() mirrors wait_for_selector, which resolves on the first match
	if err := s.locator(l).First().WaitFor(); err != nil {
		return fmt.Errorf("failed waiting for %s: %w", l, err)
	}
	return nil
}

func (s *playwrightSession) Count(l Locator) (int, error) {
	n, err := s.locator(l).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", l, err)
	}
	return n, nil
}

func (s *playwrightSession) Visible(l Locator) (bool, error) {
	visible, err := s.locator(l).IsVisible()
	if err != nil {
		return false, fmt.Errorf("failed to check visibility of %s: %w", l, err)
	}
	return visible, nil
}

func (s *playwrightSession) Attribute(l Locator, name string) (string, bool, error) {
	// GetAttribute cannot tell an absent attribute from an empty one
	v, err := s.locator(l).Evaluate("(el, name) => el.getAttribute(name)", name)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s of %s: %w", name, l, err)
	}
	if v == nil {
		return "", false, nil
	}
	str, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("unexpected %T for attribute %s", v, name)
	}
	return str, true, nil
}

func (s *playwrightSession) InnerText(l Locator) (string, error) {
	text, err := s.locator(l).InnerText()
	if err != nil {
		return "", fmt.Errorf("failed to read text of %s: %w", l, err)
	}
	return text, nil
}

func (s *playwrightSession) Screenshot(path string) error {
	if _, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(path),
	}); err != nil {
		return fmt.Errorf("failed to capture screenshot %s: %w", path, err)
	}
	return nil
}

func (s *playwrightSession) Close() error {
	var errs []error
	if err := s.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
	}
	if err := s.pw.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
	}
	return errors.Join(errs...)
}
