package search

import "unicode"

// Segment is a run of a result name, emphasized when it matched the query
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits name around the first case-insensitive occurrence of
// query. Matching is rune-wise with Unicode simple folding, so Cyrillic
// names highlight the same way Latin ones do.
func Highlight(name, query string) []Segment {
	nr, qr := []rune(name), []rune(query)
	if len(qr) == 0 || len(qr) > len(nr) {
		return []Segment{{Text: name}}
	}

	at := -1
	for i := 0; i+len(qr) <= len(nr); i++ {
		if runesFoldEqual(nr[i:i+len(qr)], qr) {
			at = i
			break
		}
	}
	if at < 0 {
		return []Segment{{Text: name}}
	}

	segs := make([]Segment, 0, 3)
	if at > 0 {
		segs = append(segs, Segment{Text: string(nr[:at])})
	}
	segs = append(segs, Segment{Text: string(nr[at : at+len(qr)]), Match: true})
	if end := at + len(qr); end < len(nr) {
		segs = append(segs, Segment{Text: string(nr[end:])})
	}
	return segs
}

func runesFoldEqual(a, b []rune) bool {
	for i := range a {
		if !foldEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func foldEqual(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}
