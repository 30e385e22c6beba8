// Package batch partitions an ordered URL list into fixed-size groups,
// each of which becomes one output PDF.
package batch

import (
	"fmt"
	"iter"
)

// DefaultSize is the number of episodes bundled into one PDF.
const DefaultSize = 20

// Batch is one contiguous window of the input list. Index is 1-based and
// determines the output filename.
type Batch struct {
	Index int
	URLs  []string
}

// Filename returns the stable output name for this batch within a season.
func (b Batch) Filename(season string) string {
	return fmt.Sprintf("%s_episodes_part%d.pdf", season, b.Index)
}

// Plan yields batches lazily, in input order. The final batch holds the
// remainder. Each Batch borrows a sub-slice of urls; callers must not
// mutate the input while iterating. A size below 1 falls back to
// DefaultSize.
func Plan(urls []string, size int) iter.Seq[Batch] {
	if size < 1 {
		size = DefaultSize
	}

	return func(yield func(Batch) bool) {
		for start := 0; start < len(urls); start += size {
			end := min(start+size, len(urls))

			b := Batch{
				Index: start/size + 1,
				URLs:  urls[start:end],
			}
			if !yield(b) {
				return
			}
		}
	}
}

// Count reports how many batches Plan will produce for a list of n URLs.
func Count(n, size int) int {
	if size < 1 {
		size = DefaultSize
	}

	return (n + size - 1) / size
}
