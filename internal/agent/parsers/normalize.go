package parsers

import "strings"

// Normalize lower-cases the query and collapses runs of whitespace to a
// single space. All rule tables in this package match against normalized
// text only.
func Normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// containsAnyWord returns the byte offset of the first matching word, or -1.
func containsAnyWord(text string, words []string) int {
	best := -1
	for _, w := range words {
		idx := indexWord(text, w)
		if idx >= 0 && (best < 0 || idx < best) {
			best = idx
		}
	}
	return best
}

// indexWord finds word bounded by non-alphanumeric bytes (or the text
// edges). Plain substring matching would let "or" match inside
// "performance".
func indexWord(text, word string) int {
	for start := 0; ; {
		idx := strings.Index(text[start:], word)
		if idx < 0 {
			return -1
		}
		idx += start
		end := idx + len(word)
		leftOK := idx == 0 || !isWordByte(text[idx-1])
		rightOK := end == len(text) || !isWordByte(text[end])
		if leftOK && rightOK {
			return idx
		}
		start = idx + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b >= 'A' && b <= 'Z'
}
