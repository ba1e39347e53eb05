package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"safelogist/internal/domain"
	"safelogist/internal/search"
)

const (
	// ButtonLabel is the caption of the submit button
	ButtonLabel = "Search"
	// MinFieldWidth keeps the text field usable on narrow terminals
	MinFieldWidth = 20
)

// ViewState contains all the state needed for rendering the search box
type ViewState struct {
	Width       int
	Input       string // rendered text field
	Focused     bool
	State       search.UIState
	Query       string
	Items       []domain.Company
	Cursor      int // highlighted row, -1 for the text field
	Pending     int // row whose navigation is running, -1 for none
	LoadingText string
	EmptyText   string
	Status      string
	Help        string
}

// Layout records where the interactive parts ended up on screen so mouse
// presses can be mapped back to them. Ranges are half-open.
type Layout struct {
	FieldTop, FieldBottom   int
	FieldRight              int
	ButtonLeft, ButtonRight int
	RowsTop                 int
	Rows                    int
	DropdownBottom          int
	Right                   int
}

// RowAt returns the selectable row under (x, y), or -1
func (l Layout) RowAt(x, y int) int {
	if l.Rows == 0 || x < 0 || x >= l.Right {
		return -1
	}
	if y < l.RowsTop || y >= l.RowsTop+l.Rows {
		return -1
	}
	return y - l.RowsTop
}

// OnButton reports whether (x, y) hits the submit button
func (l Layout) OnButton(x, y int) bool {
	return y >= l.FieldTop && y < l.FieldBottom && x >= l.ButtonLeft && x < l.ButtonRight
}

// Contains reports whether (x, y) lies inside the search box container:
// the field, the button or the open dropdown
func (l Layout) Contains(x, y int) bool {
	if x < 0 || x >= l.Right {
		return false
	}
	if y >= l.FieldTop && y < l.FieldBottom {
		return x < l.ButtonRight
	}
	return y >= l.FieldBottom && y < l.DropdownBottom
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles exposes the style set, e.g. for the pager pages
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view and the layout of its parts
func (r *Renderer) Render(s ViewState) (string, Layout) {
	var layout Layout

	title := r.styles.Title.Render("SafeLogist company search")
	layout.FieldTop = lipgloss.Height(title)

	fieldWidth := s.Width - runewidth.StringWidth(ButtonLabel) - 12
	if fieldWidth < MinFieldWidth {
		fieldWidth = MinFieldWidth
	}
	fieldStyle := r.styles.Field
	if s.Focused {
		fieldStyle = r.styles.FieldFocused
	}
	field := fieldStyle.Width(fieldWidth).Render(s.Input)
	button := r.styles.Button.Render(" " + ButtonLabel + " ")
	top := lipgloss.JoinHorizontal(lipgloss.Top, field, " ", button)

	layout.FieldRight = lipgloss.Width(field)
	layout.ButtonLeft = layout.FieldRight + 1
	layout.ButtonRight = layout.ButtonLeft + lipgloss.Width(button)
	layout.FieldBottom = layout.FieldTop + lipgloss.Height(top)
	layout.Right = layout.ButtonRight
	layout.DropdownBottom = layout.FieldBottom

	parts := []string{title, top}

	if rows, selectable := r.rows(s, fieldWidth); len(rows) > 0 {
		dropdown := r.styles.Dropdown.Width(fieldWidth).Render(strings.Join(rows, "\n"))
		layout.RowsTop = layout.FieldBottom + 1
		if selectable {
			layout.Rows = len(rows)
		}
		layout.DropdownBottom = layout.FieldBottom + lipgloss.Height(dropdown)
		parts = append(parts, dropdown)
	}

	if s.Status != "" {
		parts = append(parts, r.styles.StatusError.Render(s.Status))
	}
	if s.Help != "" {
		parts = append(parts, r.styles.Help.Render(s.Help))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...), layout
}

// rows renders the dropdown content for the current state. The second result
// reports whether the rows are company rows that can be selected.
func (r *Renderer) rows(s ViewState, width int) ([]string, bool) {
	// content width inside the dropdown padding
	inner := width - 2
	if inner < 1 {
		inner = 1
	}

	switch s.State {
	case search.StateLoading:
		return []string{r.styles.Placeholder.Render(s.LoadingText)}, false
	case search.StateShowingEmpty:
		return []string{r.styles.Placeholder.Render(s.EmptyText)}, false
	case search.StateShowingResults:
		rows := make([]string, 0, len(s.Items))
		for i, item := range s.Items {
			rows = append(rows, r.row(item, s.Query, inner, i == s.Cursor, i == s.Pending, false))
		}
		return rows, true
	case search.StateDebouncing:
		// previous results stay visible but inert until the next lookup lands
		rows := make([]string, 0, len(s.Items))
		for _, item := range s.Items {
			rows = append(rows, r.row(item, s.Query, inner, false, false, true))
		}
		return rows, false
	}
	return nil, false
}

func (r *Renderer) row(item domain.Company, query string, width int, cursor, pending, stale bool) string {
	suffix := ""
	if item.ReviewsCount != nil {
		suffix = fmt.Sprintf(" (%d)", *item.ReviewsCount)
	}
	marker := "  "
	if pending {
		marker = "⟳ "
	}

	nameWidth := width - runewidth.StringWidth(marker) - runewidth.StringWidth(suffix)
	if nameWidth < 4 {
		nameWidth = 4
	}
	name := runewidth.Truncate(item.Name, nameWidth, "…")

	var b strings.Builder
	if pending {
		b.WriteString(r.styles.Pending.Render(marker))
	} else {
		b.WriteString(marker)
	}
	for _, seg := range search.Highlight(name, query) {
		switch {
		case stale:
			b.WriteString(r.styles.RowStale.Render(seg.Text))
		case seg.Match:
			b.WriteString(r.styles.Match.Render(seg.Text))
		default:
			b.WriteString(r.styles.Row.Render(seg.Text))
		}
	}
	if suffix != "" {
		b.WriteString(r.styles.Reviews.Render(suffix))
	}

	line := b.String()
	if cursor {
		pad := width - lipgloss.Width(line)
		if pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		return r.styles.RowCursor.Render(line)
	}
	return line
}
