package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductFields_Order(t *testing.T) {
	assert.Equal(t, []string{
		"title",
		"description",
		"price",
		"rating",
		"num_of_reviews",
		"additional_info",
	}, ProductFields)
}

func TestDefaultConfig_Targets(t *testing.T) {
	config := DefaultConfig()
	require.Len(t, config.Targets, 6)

	var names []string
	paginated := make(map[string]bool)
	for _, target := range config.Targets {
		names = append(names, target.Name)
		paginated[target.Name] = target.Paginate
	}

	assert.Equal(t, []string{"home", "computers", "laptops", "tablets", "phones", "touch"}, names)

	assert.False(t, paginated["home"])
	assert.False(t, paginated["computers"])
	assert.True(t, paginated["laptops"])
	assert.True(t, paginated["tablets"])
	assert.False(t, paginated["phones"])
	assert.True(t, paginated["touch"])
}

func TestDefaultConfig_Knobs(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "https://webscraper.io/", config.BaseURL)
	assert.True(t, config.Headless)
	assert.True(t, config.UseBrowser)
	assert.Greater(t, config.PollTimeout, config.PollInterval)
}
