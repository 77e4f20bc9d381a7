package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"ecommerce-scraper/internal/types"
)

// WriteCSV writes products to <dir>/<name>.csv and returns the written path.
// The header row is always emitted, so a target with no products still
// produces a valid header-only file.
func WriteCSV(products []types.Product, dir string, name string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name+".csv")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(types.ProductFields); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, product := range products {
		row, err := record(product)
		if err != nil {
			return "", fmt.Errorf("failed to encode product %q: %w", product.Title, err)
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write product %q: %w", product.Title, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush %s: %w", path, err)
	}

	return path, nil
}

// record flattens a product into the CSV column order. The additional info
// column carries a JSON object so nested variant prices survive the trip
// through a flat file.
func record(p types.Product) ([]string, error) {
	info := p.AdditionalInfo
	if info == nil {
		info = map[string]interface{}{}
	}
	infoJSON, err := json.Marshal(info)
	if err != nil {
		return nil, err
	}

	return []string{
		p.Title,
		p.Description,
		strconv.FormatFloat(p.Price, 'f', -1, 64),
		strconv.Itoa(p.Rating),
		strconv.Itoa(p.NumOfReviews),
		string(infoJSON),
	}, nil
}
