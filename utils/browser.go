package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"ecommerce-scraper/internal/types"
)

var (
	// ErrClickBlocked is returned when an element exists but cannot be
	// interacted with right now (hidden, disabled, or detached mid-render).
	ErrClickBlocked = errors.New("click blocked")

	// ErrActionTimeout is returned when a browser action exceeds the
	// configured action timeout.
	ErrActionTimeout = errors.New("browser action timed out")
)

// Session drives a single headless Chrome instance for the lifetime of a
// scraping run. All page interactions share one tab so that state built up by
// clicks (expanded listings, selected variants) survives between calls.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc
	config *types.Config
	logger types.Logger
}

// NewSession launches the browser and blocks until it is ready to accept
// commands. The caller must call Close to release the browser process.
func NewSession(config *types.Config, logger types.Logger) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.UserAgent(config.UserAgent),
		chromedp.Flag("headless", config.Headless),
		chromedp.Flag("disable-gpu", config.Headless),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("disable-popup-blocking", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(logger.Debugf))
	runCtx, runCancel := context.WithTimeout(browserCtx, config.GlobalTimeout)

	cancel := func() {
		runCancel()
		browserCancel()
		allocCancel()
	}

	// Run with no actions starts the browser, so launch failures surface
	// here instead of on the first navigation.
	if err := chromedp.Run(runCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	logger.Debug("browser session started")
	return &Session{
		ctx:    runCtx,
		cancel: cancel,
		config: config,
		logger: logger,
	}, nil
}

// Close shuts down the browser process. Safe to call once per session.
func (s *Session) Close() {
	s.logger.Debug("closing browser session")
	s.cancel()
}

// run executes actions against the shared tab, bounded by the per-action
// timeout. The caller context is only consulted for early cancellation; the
// browser context carries the session lifetime.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	actionCtx, cancel := context.WithTimeout(s.ctx, s.config.ActionTimeout)
	defer cancel()
	return chromedp.Run(actionCtx, actions...)
}

// Navigate loads the given URL and waits for the document body to be ready.
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.logger.Debugf("navigating to %s", url)
	err := s.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, classify(err))
	}
	return nil
}

// PageSource returns the full HTML of the current page.
func (s *Session) PageSource(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to read page source: %w", classify(err))
	}
	s.logger.Debugf("retrieved page source (%d bytes)", len(html))
	return html, nil
}

// Exists reports whether at least one element matches the selector on the
// current page. A missing element is an answer, not an error.
func (s *Session) Exists(ctx context.Context, selector string) (bool, error) {
	var nodes []*cdp.Node
	err := s.run(ctx, chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
	if err != nil {
		return false, fmt.Errorf("failed to query %q: %w", selector, classify(err))
	}
	return len(nodes) > 0, nil
}

// Click clicks the first visible element matching the selector. When the
// element is present but not interactable the error wraps ErrClickBlocked so
// callers can retry.
func (s *Session) Click(ctx context.Context, selector string) error {
	err := s.run(ctx, chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible))
	if err != nil {
		return fmt.Errorf("failed to click %q: %w", selector, classify(err))
	}
	return nil
}

// Text returns the visible text of the first element matching the selector.
func (s *Session) Text(ctx context.Context, selector string) (string, error) {
	var text string
	if err := s.run(ctx, chromedp.Text(selector, &text, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to read text of %q: %w", selector, classify(err))
	}
	return strings.TrimSpace(text), nil
}

// Attributes returns the attribute maps of every element matching the
// selector, in document order. No matches yields an empty slice.
func (s *Session) Attributes(ctx context.Context, selector string) ([]map[string]string, error) {
	var attrs []map[string]string
	err := s.run(ctx, chromedp.AttributesAll(selector, &attrs, chromedp.ByQueryAll, chromedp.AtLeast(0)))
	if err != nil {
		return nil, fmt.Errorf("failed to read attributes of %q: %w", selector, classify(err))
	}
	return attrs, nil
}

// WaitTextChange polls the selector until its text differs from previous,
// then returns the new text. If the text never changes within the poll
// timeout the current text is returned anyway; identical values are a valid
// outcome, not a failure.
func (s *Session) WaitTextChange(ctx context.Context, selector, previous string) (string, error) {
	deadline := time.After(s.config.PollTimeout)
	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for {
		text, err := s.Text(ctx, selector)
		if err != nil {
			return "", err
		}
		if text != previous {
			return text, nil
		}

		select {
		case <-deadline:
			s.logger.Debugf("text of %q unchanged after %v", selector, s.config.PollTimeout)
			return text, nil
		case <-ticker.C:
		}
	}
}

// classify maps engine failures onto the package sentinels so callers can
// branch with errors.Is without depending on chromedp.
func classify(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrActionTimeout, err)
	case errors.Is(err, chromedp.ErrNotVisible),
		errors.Is(err, chromedp.ErrDisabled),
		errors.Is(err, chromedp.ErrInvalidBoxModel):
		return fmt.Errorf("%w: %v", ErrClickBlocked, err)
	}

	msg := strings.ToLower(err.Error())
	for _, hint := range []string{"could not compute box model", "node is detached", "not clickable"} {
		if strings.Contains(msg, hint) {
			return fmt.Errorf("%w: %v", ErrClickBlocked, err)
		}
	}
	return err
}
