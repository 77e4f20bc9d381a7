package types

import (
	"context"
	"time"
)

// Product represents one scraped catalog entry
type Product struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Rating       int     `json:"rating"`
	NumOfReviews int     `json:"num_of_reviews"`
	// AdditionalInfo is an open mapping for extension data; today it holds a
	// single "hdd_prices" key mapping a swatch value to the price shown after
	// clicking that swatch.
	AdditionalInfo map[string]interface{} `json:"additional_info"`
}

// ProductFields is the fixed output column order, shared by the CSV header
// and every data row.
var ProductFields = []string{
	"title",
	"description",
	"price",
	"rating",
	"num_of_reviews",
	"additional_info",
}

// CatalogTarget is one named listing page to scrape
type CatalogTarget struct {
	Name     string // output file basename
	Path     string // relative to Config.BaseURL
	Paginate bool   // drive the "load more" control until it disappears
}

// Config holds the configuration for the scraper
type Config struct {
	BaseURL   string
	OutputDir string
	Targets   []CatalogTarget

	Headless      bool
	UseBrowser    bool // false = plain-HTTP listing fetch, no pagination or variant prices
	GlobalTimeout time.Duration
	ActionTimeout time.Duration

	// Poll settings for waiting out the DOM update between a swatch click
	// and the price read.
	PollInterval time.Duration
	PollTimeout  time.Duration

	// HTTP fallback client settings.
	RequestDelay time.Duration
	MaxRetries   int
	UserAgent    string
}

// DefaultConfig returns the default configuration, including the fixed
// catalog table. The table is compile-time data; flags and env override the
// ambient knobs around it, never the table itself.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "https://webscraper.io/",
		OutputDir: ".",
		Targets: []CatalogTarget{
			{Name: "home", Path: "test-sites/e-commerce/more/", Paginate: false},
			{Name: "computers", Path: "test-sites/e-commerce/more/computers", Paginate: false},
			{Name: "laptops", Path: "test-sites/e-commerce/more/computers/laptops", Paginate: true},
			{Name: "tablets", Path: "test-sites/e-commerce/more/computers/tablets", Paginate: true},
			{Name: "phones", Path: "test-sites/e-commerce/more/phones", Paginate: false},
			{Name: "touch", Path: "test-sites/e-commerce/more/phones/touch", Paginate: true},
		},
		Headless:      true,
		UseBrowser:    true,
		GlobalTimeout: 10 * time.Minute,
		ActionTimeout: 30 * time.Second,
		PollInterval:  100 * time.Millisecond,
		PollTimeout:   2 * time.Second,
		RequestDelay:  1 * time.Second,
		MaxRetries:    3,
		UserAgent:     "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}
}

// Browser is the capability surface consumed from the automation engine.
// Absence of an element is an expected branch, so Exists and Attributes
// report "nothing matched" without an error value.
type Browser interface {
	// Navigate drives the session to url and waits for the page to be ready.
	Navigate(ctx context.Context, url string) error

	// PageSource returns the current rendered document markup.
	PageSource(ctx context.Context) (string, error)

	// Exists reports whether at least one element matches the selector.
	Exists(ctx context.Context, selector string) (bool, error)

	// Click activates the first visible element matching the selector.
	Click(ctx context.Context, selector string) error

	// Text returns the visible text of the first element matching the selector.
	Text(ctx context.Context, selector string) (string, error)

	// Attributes returns the attribute maps of all elements matching the
	// selector, in document order; an empty slice when nothing matches.
	Attributes(ctx context.Context, selector string) ([]map[string]string, error)

	// WaitTextChange polls the selector's text until it differs from previous
	// or the poll timeout elapses, and returns the latest text either way.
	WaitTextChange(ctx context.Context, selector, previous string) (string, error)
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
