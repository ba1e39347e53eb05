package search

import (
	"net/url"
	"strings"

	"safelogist/internal/domain"
)

// SearchRoute points at the full results page: {basePath}/search?q={query}
func SearchRoute(basePath, query string) domain.Route {
	query = strings.TrimSpace(query)
	return domain.Route{
		Kind:  domain.RouteSearch,
		Path:  strings.TrimRight(basePath, "/") + "/search?q=" + url.QueryEscape(query),
		Query: query,
	}
}

// ItemRoute points at a company page: {basePath}/item/{id}
func ItemRoute(basePath string, item domain.Company) domain.Route {
	it := item
	return domain.Route{
		Kind: domain.RouteItem,
		Path: strings.TrimRight(basePath, "/") + "/item/" + url.PathEscape(item.ID.String()),
		Item: &it,
	}
}

// AbsoluteURL joins a route path onto the site origin. An empty origin
// leaves the path as-is.
func AbsoluteURL(siteURL string, route domain.Route) string {
	if siteURL == "" {
		return route.Path
	}
	return strings.TrimRight(siteURL, "/") + route.Path
}
