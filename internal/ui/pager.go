package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/noborus/ov/oviewer"

	"safelogist/internal/domain"
	"safelogist/internal/search"
)

// PagerNavigator renders the target page and shows it in the ov pager
type PagerNavigator struct {
	program   *tea.Program // reference to Bubble Tea program for terminal management
	lookup    search.Lookup
	basePath  string
	siteURL   string
	pageLimit int
}

// NewPagerNavigator creates a pager navigator. The search page is filled by
// a lookup of up to pageLimit companies linking to items under basePath.
func NewPagerNavigator(lookup search.Lookup, basePath, siteURL string, pageLimit int) *PagerNavigator {
	return &PagerNavigator{lookup: lookup, basePath: basePath, siteURL: siteURL, pageLimit: pageLimit}
}

// SetProgram sets the program reference for terminal management
func (n *PagerNavigator) SetProgram(p *tea.Program) {
	n.program = p
}

// Navigate renders the page for route and pages it
func (n *PagerNavigator) Navigate(ctx context.Context, route domain.Route) error {
	content, err := n.Page(ctx, route)
	if err != nil {
		return err
	}
	return n.Show(content)
}

// Page renders the text of the page a route points at
func (n *PagerNavigator) Page(ctx context.Context, route domain.Route) (string, error) {
	switch route.Kind {
	case domain.RouteItem:
		return n.itemPage(route), nil
	case domain.RouteSearch:
		return n.searchPage(ctx, route)
	}
	return "", fmt.Errorf("unknown route kind %v", route.Kind)
}

func (n *PagerNavigator) searchPage(ctx context.Context, route domain.Route) (string, error) {
	items, err := n.lookup.Search(ctx, route.Query, n.pageLimit)
	if err != nil {
		return "", fmt.Errorf("search page for %q: %w", route.Query, err)
	}

	var b strings.Builder
	b.WriteString(pageTitle.Render(fmt.Sprintf("Search results for %q", route.Query)))
	b.WriteString("\n")
	b.WriteString(pageDim.Render(search.AbsoluteURL(n.siteURL, route)))
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString("No companies match this query.\n")
		return b.String(), nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Company", "Reviews", "Page"})
	for i, item := range items {
		itemRoute := search.ItemRoute(n.basePath, item)
		t.AppendRow(table.Row{i + 1, item.Name, reviews(item), search.AbsoluteURL(n.siteURL, itemRoute)})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d shown", len(items))})
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String(), nil
}

func (n *PagerNavigator) itemPage(route domain.Route) string {
	var b strings.Builder
	name, id := "", ""
	if route.Item != nil {
		name, id = route.Item.Name, route.Item.ID.String()
	}

	b.WriteString(pageTitle.Render(name))
	b.WriteString("\n")
	b.WriteString(pageDim.Render(search.AbsoluteURL(n.siteURL, route)))
	b.WriteString("\n\n")

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendRow(table.Row{"ID", id})
	t.AppendRow(table.Row{"Company", name})
	if route.Item != nil {
		t.AppendRow(table.Row{"Reviews", reviews(*route.Item)})
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// Show pages content using ov, handing the terminal over for the duration
func (n *PagerNavigator) Show(content string) error {
	if n.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := n.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = n.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

var (
	pageTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	pageDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func reviews(c domain.Company) string {
	if c.ReviewsCount == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *c.ReviewsCount)
}
