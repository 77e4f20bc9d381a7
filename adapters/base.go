package adapters

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ecommerce-scraper/internal/types"
)

// BaseAdapter provides common functionality for site adapters: parsing HTML
// into documents and normalizing the raw text the site serves into typed
// values.
type BaseAdapter struct {
	config *types.Config
	logger types.Logger
}

// NewBaseAdapter creates a new base adapter.
func NewBaseAdapter(config *types.Config, logger types.Logger) *BaseAdapter {
	return &BaseAdapter{
		config: config,
		logger: logger,
	}
}

// ParseHTML parses HTML content into a goquery document
func (b *BaseAdapter) ParseHTML(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// ExtractText extracts trimmed text from the first element matching the
// selector inside the given selection.
func (b *BaseAdapter) ExtractText(sel *goquery.Selection, selector string) (string, error) {
	element := sel.Find(selector)
	if element.Length() == 0 {
		return "", fmt.Errorf("element not found with selector: %s", selector)
	}

	return strings.TrimSpace(element.First().Text()), nil
}

// ExtractAttribute extracts an attribute value from the first element
// matching the selector inside the given selection.
func (b *BaseAdapter) ExtractAttribute(sel *goquery.Selection, selector string, attribute string) (string, error) {
	element := sel.Find(selector)
	if element.Length() == 0 {
		return "", fmt.Errorf("element not found with selector: %s", selector)
	}

	value, exists := element.First().Attr(attribute)
	if !exists {
		return "", fmt.Errorf("attribute %s not found on element %s", attribute, selector)
	}

	return value, nil
}

// ResolveURL resolves a possibly relative href against a base URL.
func (b *BaseAdapter) ResolveURL(base string, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", ref, err)
	}

	return baseURL.ResolveReference(refURL).String(), nil
}

// ParsePrice converts a displayed price like "$1769.00" into its numeric
// value.
func (b *BaseAdapter) ParsePrice(raw string) (float64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, "$", ""))
	if cleaned == "" {
		return 0, fmt.Errorf("empty price text")
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price %q: %w", raw, err)
	}

	return price, nil
}

// ParseLeadingInt parses the first whitespace-separated token of the text as
// an integer. Review counts render as "14 reviews", so only the leading
// number matters.
func (b *BaseAdapter) ParseLeadingInt(raw string) (int, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty numeric text")
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("failed to parse number %q: %w", raw, err)
	}

	return n, nil
}
