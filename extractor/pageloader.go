package extractor

import (
	"context"
	"errors"

	"ecommerce-scraper/internal/types"
	"ecommerce-scraper/utils"
)

// PageLoader drives a listing page to its fully expanded state. Category
// pages hide products behind a "load more" button that must be clicked until
// it disappears from the document.
type PageLoader struct {
	browser  types.Browser
	logger   types.Logger
	loadMore string
}

// NewPageLoader creates a page loader clicking the given load-more selector.
func NewPageLoader(browser types.Browser, logger types.Logger, loadMoreSelector string) *PageLoader {
	return &PageLoader{
		browser:  browser,
		logger:   logger,
		loadMore: loadMoreSelector,
	}
}

// Load navigates to the listing URL, optionally exhausts the load-more
// button, and returns the resulting page HTML.
func (p *PageLoader) Load(ctx context.Context, url string, paginate bool) (string, error) {
	if err := p.browser.Navigate(ctx, url); err != nil {
		return "", err
	}

	if paginate {
		p.expand(ctx)
	}

	return p.browser.PageSource(ctx)
}

// expand clicks the load-more button until it is gone. Interaction failures
// end pagination with whatever already rendered; partial listings are still
// worth extracting, so nothing here aborts the run.
func (p *PageLoader) expand(ctx context.Context) {
	clicks := 0
	for {
		if err := ctx.Err(); err != nil {
			p.logger.Errorf("Pagination aborted: %v", err)
			return
		}

		present, err := p.browser.Exists(ctx, p.loadMore)
		if err != nil {
			p.logger.Errorf("Failed to probe 'load more' button, stopping pagination: %v", err)
			return
		}
		if !present {
			p.logger.Infof("No more 'load more' button found, pagination complete after %d clicks.", clicks)
			return
		}

		if err := p.browser.Click(ctx, p.loadMore); err != nil {
			switch {
			case errors.Is(err, utils.ErrClickBlocked):
				p.logger.Warn("Click on 'load more' intercepted, retrying...")
				continue
			case errors.Is(err, utils.ErrActionTimeout):
				p.logger.Errorf("Timeout reached while clicking 'load more' button: %v", err)
				return
			default:
				p.logger.Errorf("Browser error during pagination: %v", err)
				return
			}
		}
		clicks++
	}
}
