package analysis

import (
	"sort"

	"github.com/SeamusWaldron/cubeanim"
)

// NGram represents a repeated token sequence.
type NGram struct {
	N           int               `json:"n"`
	Sequence    string            `json:"sequence"`
	Count       int               `json:"count"`
	Occurrences []NGramOccurrence `json:"occurrences,omitempty"`
}

// NGramOccurrence represents where an n-gram was found.
type NGramOccurrence struct {
	StartIndex int `json:"start_index"`
}

// NGramReport contains the results of n-gram mining.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"` // Keyed by n
}

// maxOccurrences caps the positions kept per n-gram.
const maxOccurrences = 10

// RollingHash implements Rabin-Karp rolling hash for efficient n-gram detection.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1) for removal
	window []cubeanim.Token
	n      int
}

// NewRollingHash creates a new rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   131,
		n:      n,
		window: make([]cubeanim.Token, 0, n),
	}

	rh.pow = 1
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}

	return rh
}

// Roll adds a token, dropping the oldest once the window is full.
func (rh *RollingHash) Roll(t cubeanim.Token) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, t)
		rh.hash = rh.hash*rh.base + uint64(t)
		return
	}

	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(t)

	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = t
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []cubeanim.Token {
	return append([]cubeanim.Token(nil), rh.window...)
}

// Ready returns true if the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

// ngramEntry tracks n-gram occurrences during mining.
type ngramEntry struct {
	tokens      []cubeanim.Token
	first       int
	count       int
	occurrences []NGramOccurrence
}

// MineNGrams finds the top-K most frequent repeated n-grams for each n in
// [minN, maxN]. Ties keep the order of first appearance.
func MineNGrams(tokens []cubeanim.Token, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{
		TopNGrams: make(map[int][]NGram),
	}

	for n := max(minN, 1); n <= maxN && n <= len(tokens); n++ {
		if ngrams := mineNGramsForN(tokens, n, topK); len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}

	return report
}

func mineNGramsForN(tokens []cubeanim.Token, n, topK int) []NGram {
	// Colliding windows are chained under the same hash.
	counts := make(map[uint64][]*ngramEntry)
	var order []*ngramEntry
	rh := NewRollingHash(n)

	for i, t := range tokens {
		rh.Roll(t)
		if !rh.Ready() {
			continue
		}
		start := i - n + 1
		hash := rh.Hash()

		var entry *ngramEntry
		for _, e := range counts[hash] {
			if equalTokens(e.tokens, rh.window) {
				entry = e
				break
			}
		}
		if entry == nil {
			entry = &ngramEntry{tokens: rh.Window(), first: start}
			counts[hash] = append(counts[hash], entry)
			order = append(order, entry)
		}
		entry.count++
		if len(entry.occurrences) < maxOccurrences {
			entry.occurrences = append(entry.occurrences, NGramOccurrence{StartIndex: start})
		}
	}

	// Only n-grams that appear more than once
	repeated := order[:0]
	for _, e := range order {
		if e.count >= 2 {
			repeated = append(repeated, e)
		}
	}

	sort.SliceStable(repeated, func(i, j int) bool {
		return repeated[i].count > repeated[j].count
	})

	if len(repeated) > topK {
		repeated = repeated[:topK]
	}

	result := make([]NGram, len(repeated))
	for i, e := range repeated {
		result[i] = NGram{
			N:           n,
			Sequence:    cubeanim.FormatTokens(e.tokens),
			Count:       e.count,
			Occurrences: e.occurrences,
		}
	}
	return result
}

func equalTokens(a, b []cubeanim.Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
