package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"safelogist/internal/domain"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  []Segment
	}{
		{
			name:  "prefix match keeps original case",
			text:  "SafeLogist Inc",
			query: "saf",
			want:  []Segment{{Text: "Saf", Match: true}, {Text: "eLogist Inc"}},
		},
		{
			name:  "match in the middle",
			text:  "Global Acme Freight",
			query: "ACME",
			want:  []Segment{{Text: "Global "}, {Text: "Acme", Match: true}, {Text: " Freight"}},
		},
		{
			name:  "match at the end",
			text:  "Trans Logist",
			query: "gist",
			want:  []Segment{{Text: "Trans Lo"}, {Text: "gist", Match: true}},
		},
		{
			name:  "only first occurrence",
			text:  "abab",
			query: "ab",
			want:  []Segment{{Text: "ab", Match: true}, {Text: "ab"}},
		},
		{
			name:  "cyrillic",
			text:  "ООО Сейфлогист",
			query: "сейф",
			want:  []Segment{{Text: "ООО "}, {Text: "Сейф", Match: true}, {Text: "логист"}},
		},
		{
			name:  "no match",
			text:  "Acme Co",
			query: "zeta",
			want:  []Segment{{Text: "Acme Co"}},
		},
		{
			name:  "empty query",
			text:  "Acme Co",
			query: "",
			want:  []Segment{{Text: "Acme Co"}},
		},
		{
			name:  "query longer than name",
			text:  "Ac",
			query: "acme",
			want:  []Segment{{Text: "Ac"}},
		},
		{
			name:  "whole name",
			text:  "ACME",
			query: "acme",
			want:  []Segment{{Text: "ACME", Match: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Highlight(tt.text, tt.query))
		})
	}
}

func TestRoutes(t *testing.T) {
	r := SearchRoute("/ru/reviews", " acme & co ")
	assert.Equal(t, domain.RouteSearch, r.Kind)
	assert.Equal(t, "/ru/reviews/search?q=acme+%26+co", r.Path)
	assert.Equal(t, "acme & co", r.Query)

	r = SearchRoute("/en/reviews/", "сейф")
	assert.Equal(t, "/en/reviews/search?q=%D1%81%D0%B5%D0%B9%D1%84", r.Path)

	item := ItemRoute("/ru/reviews", domain.Company{ID: "42", Name: "Acme"})
	assert.Equal(t, domain.RouteItem, item.Kind)
	assert.Equal(t, "/ru/reviews/item/42", item.Path)
	assert.Equal(t, "Acme", item.Item.Name)

	odd := ItemRoute("/ru/reviews", domain.Company{ID: "a/b"})
	assert.Equal(t, "/ru/reviews/item/a%2Fb", odd.Path)

	assert.Equal(t, "https://safelogist.example/ru/reviews/item/42", AbsoluteURL("https://safelogist.example/", item))
	assert.Equal(t, "/ru/reviews/item/42", AbsoluteURL("", item))
}
