package source

import (
	"bytes"
	"iter"
)

// findAll yields every offset where needle matches in data, including
// overlapping matches: the search resumes one byte past each match start,
// not past its end. An empty needle yields nothing.
func findAll(data, needle []byte) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		if len(needle) == 0 {
			return
		}
		var base uint64
		for {
			i := bytes.Index(data, needle)
			if i < 0 {
				return
			}
			if !yield(base + uint64(i)) {
				return
			}
			data = data[i+1:]
			base += uint64(i) + 1
		}
	}
}
