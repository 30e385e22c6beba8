package cmd

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/brogergvhs/pokepdf/internal/config"
	"github.com/brogergvhs/pokepdf/internal/util"

	"github.com/spf13/cobra"
)

var (
	flagURLsDir      string
	flagURLsBaseURL  string
	flagURLsPattern  string
	flagURLsEpisodes int
)

func init() {
	urlsCmd := &cobra.Command{
		Use:   "urls <season>",
		Short: "Write a season's urls.txt from its article title pattern",
		Args:  cobra.ExactArgs(1),
		RunE:  runURLs,
	}

	urlsCmd.Flags().StringVar(&flagURLsDir, "dir", ".", "data root containing the season directories")
	urlsCmd.Flags().StringVar(&flagURLsBaseURL, "base-url", "", "override the wiki base URL")
	urlsCmd.Flags().StringVar(&flagURLsPattern, "pattern", "", "override the article title pattern (one %d for the episode number)")
	urlsCmd.Flags().IntVar(&flagURLsEpisodes, "episodes", 0, "override the episode count")

	rootCmd.AddCommand(urlsCmd)
}

func runURLs(cmd *cobra.Command, args []string) error {
	season := args[0]

	cfg, _, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
	})
	if err != nil {
		return err
	}

	spec, ok := cfg.Seasons[season]
	if !ok && (flagURLsPattern == "" || flagURLsEpisodes == 0) {
		return fmt.Errorf("unknown season %q: define it in the config or pass --pattern and --episodes", season)
	}

	if flagURLsBaseURL != "" {
		spec.BaseURL = flagURLsBaseURL
	}
	if flagURLsPattern != "" {
		spec.TitlePattern = flagURLsPattern
	}
	if flagURLsEpisodes != 0 {
		spec.Episodes = flagURLsEpisodes
	}
	if spec.BaseURL == "" {
		spec.BaseURL = "https://wiki.52poke.com/wiki/"
	}

	urls := GenerateURLs(spec)

	seasonDir := filepath.Join(flagURLsDir, season)
	if err := os.MkdirAll(seasonDir, 0755); err != nil {
		return fmt.Errorf("cannot create season folder: %w", err)
	}

	out := filepath.Join(seasonDir, "urls.txt")
	if err := util.WriteLines(out, urls); err != nil {
		return fmt.Errorf("write urls: %w", err)
	}

	fmt.Printf("Wrote %d URLs to %s\n", len(urls), out)

	return nil
}

// GenerateURLs expands a season spec into percent-encoded article URLs,
// one per episode, in broadcast order.
func GenerateURLs(spec config.SeasonSpec) []string {
	urls := make([]string, 0, spec.Episodes)
	for i := 1; i <= spec.Episodes; i++ {
		title := fmt.Sprintf(spec.TitlePattern, i)
		urls = append(urls, spec.BaseURL+url.PathEscape(title))
	}

	return urls
}
