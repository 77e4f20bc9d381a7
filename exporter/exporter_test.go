package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-scraper/internal/types"
)

func readBack(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSV(t *testing.T) {
	products := []types.Product{
		{
			Title:        "Asus ROG Strix G15",
			Description:  `15.6" FHD, Ryzen 7 5800H, 16GB, 512GB SSD`,
			Price:        1769.00,
			Rating:       3,
			NumOfReviews: 14,
			AdditionalInfo: map[string]interface{}{
				"hdd_prices": map[string]float64{
					"512":  1144.40,
					"1024": 1178.98,
				},
			},
		},
		{
			Title:          "Galaxy Tab 3",
			Description:    "7\", 8GB, Wi-Fi, Android 4.2, Yellow",
			Price:          107.99,
			Rating:         2,
			NumOfReviews:   2,
			AdditionalInfo: map[string]interface{}{"hdd_prices": map[string]float64{}},
		},
	}

	dir := t.TempDir()
	path, err := WriteCSV(products, dir, "laptops")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "laptops.csv"), path)

	records := readBack(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, types.ProductFields, records[0])

	assert.Equal(t, []string{
		"Asus ROG Strix G15",
		`15.6" FHD, Ryzen 7 5800H, 16GB, 512GB SSD`,
		"1769",
		"3",
		"14",
		`{"hdd_prices":{"1024":1178.98,"512":1144.4}}`,
	}, records[1])

	assert.Equal(t, []string{
		"Galaxy Tab 3",
		"7\", 8GB, Wi-Fi, Android 4.2, Yellow",
		"107.99",
		"2",
		"2",
		`{"hdd_prices":{}}`,
	}, records[2])
}

func TestWriteCSV_NoProducts(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteCSV(nil, dir, "home")
	require.NoError(t, err)

	records := readBack(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, types.ProductFields, records[0])
}

func TestWriteCSV_NilAdditionalInfo(t *testing.T) {
	products := []types.Product{{Title: "Widget", Price: 9.99}}

	dir := t.TempDir()
	path, err := WriteCSV(products, dir, "widgets")
	require.NoError(t, err)

	records := readBack(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, "{}", records[1][5])
}

func TestWriteCSV_CreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "csv")
	path, err := WriteCSV(nil, dir, "home")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestWriteCSV_BadDirectory(t *testing.T) {
	// A file standing where the directory should be.
	base := t.TempDir()
	blocker := filepath.Join(base, "out")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := WriteCSV(nil, blocker, "home")
	assert.Error(t, err)
}
