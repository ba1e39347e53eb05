package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// CompanyID identifies a company on the remote directory.
// The lookup endpoint has served both numeric and string ids, so both decode.
type CompanyID string

// UnmarshalJSON accepts a JSON number or a JSON string
func (id *CompanyID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("company id is empty")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid company id: %w", err)
		}
		if s == "" {
			return fmt.Errorf("company id is empty")
		}
		*id = CompanyID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid company id: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("invalid company id %s: %w", n, err)
	}
	*id = CompanyID(n.String())
	return nil
}

// String returns the id as it appears in URLs
func (id CompanyID) String() string {
	return string(id)
}

// Company is one match returned by the lookup endpoint
type Company struct {
	ID           CompanyID `json:"id"`
	Name         string    `json:"name"`
	ReviewsCount *int      `json:"reviews_count,omitempty"`
}

// ResultSet is an ordered list of matches plus the query that produced it
type ResultSet struct {
	Query string
	Items []Company
}

// Empty reports whether the set holds no items
func (rs ResultSet) Empty() bool {
	return len(rs.Items) == 0
}

// RouteKind tells navigators which page a route points at
type RouteKind int

const (
	RouteSearch RouteKind = iota // full search results page
	RouteItem                    // single company page
)

func (k RouteKind) String() string {
	switch k {
	case RouteSearch:
		return "search"
	case RouteItem:
		return "item"
	default:
		return "unknown"
	}
}

// Route is a navigation target produced by the search box
type Route struct {
	Kind  RouteKind
	Path  string   // locale-prefixed path, e.g. /ru/reviews/item/1
	Query string   // trimmed query for search routes
	Item  *Company // selected company for item routes
}
