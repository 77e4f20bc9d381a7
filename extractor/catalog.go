package extractor

import (
	"context"
	"fmt"
	"time"

	"ecommerce-scraper/adapters"
	"ecommerce-scraper/exporter"
	"ecommerce-scraper/internal/types"
	"ecommerce-scraper/utils"
)

// CatalogExtractor scrapes the fixed catalog table and writes one CSV per
// target. With a browser it paginates listings and collects variant prices;
// without one it degrades to plain-HTTP single-page extraction.
type CatalogExtractor struct {
	config     *types.Config
	logger     types.Logger
	adapter    *adapters.DemoStoreAdapter
	loader     *PageLoader
	httpClient *utils.HTTPClient
}

// NewCatalogExtractor creates a catalog extractor. The browser may be nil;
// the HTTP client is only consulted when it is.
func NewCatalogExtractor(config *types.Config, logger types.Logger, browser types.Browser, httpClient *utils.HTTPClient) *CatalogExtractor {
	e := &CatalogExtractor{
		config:     config,
		logger:     logger,
		adapter:    adapters.NewDemoStoreAdapter(config, logger, browser),
		httpClient: httpClient,
	}
	if browser != nil {
		e.loader = NewPageLoader(browser, logger, adapters.SelectorLoadMore)
	}
	return e
}

// Run extracts every configured target in order and writes its CSV. The first
// failing target aborts the run.
func (e *CatalogExtractor) Run(ctx context.Context) error {
	startTime := time.Now()
	e.logger.Infof("Starting catalog extraction at %v", startTime.Format("15:04:05.000"))

	totalProducts := 0
	for _, target := range e.config.Targets {
		products, err := e.ExtractTarget(ctx, target)
		if err != nil {
			return fmt.Errorf("failed to extract target %s: %w", target.Name, err)
		}

		path, err := exporter.WriteCSV(products, e.config.OutputDir, target.Name)
		if err != nil {
			return fmt.Errorf("failed to write CSV for target %s: %w", target.Name, err)
		}

		e.logger.Infof("Wrote %d products to %s", len(products), path)
		totalProducts += len(products)
	}

	e.logger.Infof("Catalog extraction completed in %v", time.Since(startTime))
	e.logger.Infof("Successfully processed %d products across %d targets", totalProducts, len(e.config.Targets))
	return nil
}

// ExtractTarget loads one listing page and returns its products.
func (e *CatalogExtractor) ExtractTarget(ctx context.Context, target types.CatalogTarget) ([]types.Product, error) {
	url, err := e.adapter.ResolveURL(e.config.BaseURL, target.Path)
	if err != nil {
		return nil, err
	}

	e.logger.Infof("Start scraping products from %s", url)

	html, err := e.loadPage(ctx, url, target)
	if err != nil {
		return nil, err
	}

	return e.adapter.ExtractProducts(ctx, html)
}

// loadPage fetches the listing HTML through the browser when available,
// falling back to the HTTP client otherwise.
func (e *CatalogExtractor) loadPage(ctx context.Context, url string, target types.CatalogTarget) (string, error) {
	if e.loader != nil {
		return e.loader.Load(ctx, url, target.Paginate)
	}

	if target.Paginate {
		e.logger.Warnf("Pagination for %s requires the browser, extracting initial page only", target.Name)
	}

	body, err := e.httpClient.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
