package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"ecommerce-scraper/internal/types"
	"ecommerce-scraper/utils"
)

// Standalone probe for checking what the demo store currently renders. Handy
// when a selector stops matching: prints per-selector hit counts for one page
// instead of running the full extraction.
func main() {
	config := types.DefaultConfig()

	url := flag.String("url", config.BaseURL+"test-sites/e-commerce/more/computers/laptops", "Page to probe")
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	session, err := utils.NewSession(config, logger)
	if err != nil {
		logger.Fatalf("Failed to start browser: %v", err)
	}
	defer session.Close()

	if err := probe(context.Background(), session, *url); err != nil {
		logger.Errorf("Probe failed: %v", err)
	}
}

func probe(ctx context.Context, session *utils.Session, url string) error {
	if err := session.Navigate(ctx, url); err != nil {
		return err
	}

	html, err := session.PageSource(ctx)
	if err != nil {
		return err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return err
	}

	fmt.Printf("=== %s ===\n", url)
	selectors := []string{
		".thumbnail",
		".title",
		".description",
		".price",
		".ratings span.ws-icon.ws-icon-star",
		".review-count",
		".ecommerce-items-scroll-more",
		".swatches",
		".swatches button",
	}
	for _, selector := range selectors {
		fmt.Printf("%-40s %d\n", selector, doc.Find(selector).Length())
	}

	fmt.Println("Sample titles:")
	doc.Find(".title").EachWithBreak(func(i int, s *goquery.Selection) bool {
		title := s.AttrOr("title", strings.TrimSpace(s.Text()))
		fmt.Printf("  %d: %s\n", i+1, title)
		return i < 4
	})

	return nil
}
