package cmd

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/brogergvhs/pokepdf/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateURLs(t *testing.T) {
	spec := config.SeasonSpec{
		BaseURL:      "https://wiki.52poke.com/wiki/",
		TitlePattern: "宝可梦_超世代_第%d集",
		Episodes:     3,
	}

	urls := GenerateURLs(spec)

	require.Len(t, urls, 3)
	for i, u := range urls {
		require.True(t, strings.HasPrefix(u, spec.BaseURL), u)

		decoded, err := url.PathUnescape(strings.TrimPrefix(u, spec.BaseURL))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("宝可梦_超世代_第%d集", i+1), decoded)
	}
}

func TestGenerateURLsAreASCII(t *testing.T) {
	urls := GenerateURLs(config.SeasonSpec{
		BaseURL:      "https://wiki.52poke.com/wiki/",
		TitlePattern: "宝可梦_第%d集",
		Episodes:     1,
	})

	require.Len(t, urls, 1)
	for _, r := range urls[0] {
		assert.Less(t, r, rune(128), "generated URLs must be percent-encoded")
	}
}

func TestGenerateURLsEmptySeason(t *testing.T) {
	assert.Empty(t, GenerateURLs(config.SeasonSpec{Episodes: 0}))
}
