package grammar

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// vocabulary holds the words the grammar knows that are longer than two
// letters, sorted so suggestions are deterministic
var vocabulary = knownWords()

func knownWords() []string {
	seen := map[string]bool{"ago": true, "noon": true, "midnight": true, "dst": true}
	for _, table := range []map[string]bool{
		keys(monthWords), keys(weekdayWords), keys(unitWords),
		keys(keywordWords), keys(ordinalWords), keys(zoneWords),
	} {
		for w := range table {
			seen[w] = true
		}
	}
	words := make([]string, 0, len(seen))
	for w := range seen {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	sort.Strings(words)
	return words
}

func keys[V any](m map[string]V) map[string]bool {
	out := make(map[string]bool, len(m))
	for k := range m {
		out[k] = true
	}
	return out
}

// suggestWord finds the closest known word within two edits
func suggestWord(word string) (string, bool) {
	if len(word) < 3 {
		return "", false
	}
	best, bestDist := "", 3
	for _, w := range vocabulary {
		if d := fuzzy.LevenshteinDistance(word, w); d < bestDist {
			best, bestDist = w, d
		}
	}
	return best, best != ""
}
