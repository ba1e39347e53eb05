package server

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"safelogist/internal/domain"
)

//go:embed seed/companies.json
var seedFS embed.FS

// Directory is an in-memory company list searched by name
type Directory struct {
	companies []domain.Company
	folded    []string
}

// NewDirectory indexes items for caseless matching
func NewDirectory(items []domain.Company) *Directory {
	fold := cases.Fold()
	d := &Directory{
		companies: append([]domain.Company(nil), items...),
		folded:    make([]string, len(items)),
	}
	for i, c := range d.companies {
		d.folded[i] = fold.String(c.Name)
	}
	return d
}

// LoadDirectory reads a JSON array of companies from path, or the bundled
// seed when path is empty
func LoadDirectory(path string) (*Directory, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = seedFS.ReadFile("seed/companies.json")
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var items []domain.Company
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse directory: %w", err)
	}
	return NewDirectory(items), nil
}

// Len returns the number of companies
func (d *Directory) Len() int {
	return len(d.companies)
}

// Search returns up to limit companies whose name contains query, ignoring
// case. Names starting with the query come first, then alphabetical order.
func (d *Directory) Search(query string, limit int) []domain.Company {
	q := cases.Fold().String(strings.TrimSpace(query))
	if q == "" {
		return []domain.Company{}
	}

	type hit struct {
		idx    int
		prefix bool
	}
	var hits []hit
	for i, name := range d.folded {
		if strings.Contains(name, q) {
			hits = append(hits, hit{idx: i, prefix: strings.HasPrefix(name, q)})
		}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].prefix != hits[b].prefix {
			return hits[a].prefix
		}
		return d.folded[hits[a].idx] < d.folded[hits[b].idx]
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]domain.Company, 0, len(hits))
	for _, h := range hits {
		out = append(out, d.companies[h.idx])
	}
	return out
}
