package util

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadURLs loads a urls.txt file: one absolute URL per line, order
// significant, blank lines skipped.
func ReadURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("urls file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			urls = append(urls, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("urls file: %w", err)
	}

	return urls, nil
}

// WriteLines writes one string per line, used for generated urls.txt files.
func WriteLines(path string, lines []string) error {
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}
