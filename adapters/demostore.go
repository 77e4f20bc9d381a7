package adapters

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"ecommerce-scraper/internal/types"
)

// SelectorLoadMore matches the button that reveals further products on
// scroll-paginated category pages.
const SelectorLoadMore = ".ecommerce-items-scroll-more"

const (
	selCard         = ".thumbnail"
	selTitle        = ".title"
	selDescription  = ".description"
	selPrice        = ".price"
	selRatingStar   = ".ratings span.ws-icon.ws-icon-star"
	selReviewCount  = ".review-count"
	selSwatchGroup  = ".swatches"
	selSwatchButton = ".swatches button"
)

// variantPricesKey is the additional info field holding per-capacity prices.
const variantPricesKey = "hdd_prices"

// DemoStoreAdapter extracts products from the demo e-commerce site. Listing
// pages are parsed from captured HTML; variant prices require the browser to
// open the product detail page and click through the capacity swatches.
type DemoStoreAdapter struct {
	*BaseAdapter
	browser types.Browser
}

// NewDemoStoreAdapter creates a new adapter for the demo store. A nil browser
// disables detail-page visits, leaving variant prices empty.
func NewDemoStoreAdapter(config *types.Config, logger types.Logger, browser types.Browser) *DemoStoreAdapter {
	return &DemoStoreAdapter{
		BaseAdapter: NewBaseAdapter(config, logger),
		browser:     browser,
	}
}

// ExtractProducts parses every product card on a listing page and returns the
// fully populated products, detail pages included.
func (a *DemoStoreAdapter) ExtractProducts(ctx context.Context, pageHTML string) ([]types.Product, error) {
	cards, err := a.ExtractCards(pageHTML)
	if err != nil {
		return nil, err
	}

	products := make([]types.Product, 0, len(cards))
	for i, card := range cards {
		product, err := a.ParseCard(ctx, card)
		if err != nil {
			return nil, fmt.Errorf("failed to parse product card %d: %w", i+1, err)
		}
		a.logger.Debugf("parsed product %d/%d: %s", i+1, len(cards), product.Title)
		products = append(products, product)
	}

	return products, nil
}

// ExtractCards returns the product card selections found on a listing page.
func (a *DemoStoreAdapter) ExtractCards(pageHTML string) ([]*goquery.Selection, error) {
	doc, err := a.ParseHTML(pageHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	var cards []*goquery.Selection
	doc.Find(selCard).Each(func(_ int, s *goquery.Selection) {
		cards = append(cards, s)
	})

	a.logger.Debugf("found %d product cards", len(cards))
	return cards, nil
}

// ParseCard builds a product from a single card selection. The card carries
// title, description, price, rating and review count; variant prices come
// from the linked detail page.
func (a *DemoStoreAdapter) ParseCard(ctx context.Context, card *goquery.Selection) (types.Product, error) {
	title, err := a.ExtractAttribute(card, selTitle, "title")
	if err != nil {
		return types.Product{}, err
	}

	description, err := a.ExtractText(card, selDescription)
	if err != nil {
		return types.Product{}, err
	}

	priceText, err := a.ExtractText(card, selPrice)
	if err != nil {
		return types.Product{}, err
	}
	price, err := a.ParsePrice(priceText)
	if err != nil {
		return types.Product{}, err
	}

	rating := card.Find(selRatingStar).Length()

	reviewText, err := a.ExtractText(card, selReviewCount)
	if err != nil {
		return types.Product{}, err
	}
	reviews, err := a.ParseLeadingInt(reviewText)
	if err != nil {
		return types.Product{}, err
	}

	variants, err := a.variantPrices(ctx, card)
	if err != nil {
		return types.Product{}, fmt.Errorf("failed to collect variant prices for %q: %w", title, err)
	}

	return types.Product{
		Title:        title,
		Description:  description,
		Price:        price,
		Rating:       rating,
		NumOfReviews: reviews,
		AdditionalInfo: map[string]interface{}{
			variantPricesKey: variants,
		},
	}, nil
}

// variantPrices opens the product detail page and clicks every enabled
// capacity swatch, reading the displayed price after each click. Products
// without a swatch block yield an empty map.
func (a *DemoStoreAdapter) variantPrices(ctx context.Context, card *goquery.Selection) (map[string]float64, error) {
	prices := make(map[string]float64)
	if a.browser == nil {
		a.logger.Debug("browser disabled, skipping variant prices")
		return prices, nil
	}

	href, err := a.ExtractAttribute(card, selTitle, "href")
	if err != nil {
		return nil, err
	}
	detailURL, err := a.ResolveURL(a.config.BaseURL, href)
	if err != nil {
		return nil, err
	}

	if err := a.browser.Navigate(ctx, detailURL); err != nil {
		return nil, err
	}

	hasSwatches, err := a.browser.Exists(ctx, selSwatchGroup)
	if err != nil {
		return nil, err
	}
	if !hasSwatches {
		return prices, nil
	}

	buttons, err := a.browser.Attributes(ctx, selSwatchButton)
	if err != nil {
		return nil, err
	}

	// Track the displayed price across clicks so each read can wait for the
	// refresh instead of racing it.
	lastPrice, err := a.browser.Text(ctx, selPrice)
	if err != nil {
		return nil, err
	}

	for _, attrs := range buttons {
		if _, disabled := attrs["disabled"]; disabled {
			continue
		}
		value, ok := attrs["value"]
		if !ok {
			a.logger.Warnf("swatch button without value attribute on %s", detailURL)
			continue
		}

		buttonSel := fmt.Sprintf("%s[value=%q]", selSwatchButton, value)
		if err := a.browser.Click(ctx, buttonSel); err != nil {
			return nil, err
		}

		priceText, err := a.browser.WaitTextChange(ctx, selPrice, lastPrice)
		if err != nil {
			return nil, err
		}
		lastPrice = priceText

		price, err := a.ParsePrice(priceText)
		if err != nil {
			return nil, err
		}
		prices[value] = price
	}

	return prices, nil
}
