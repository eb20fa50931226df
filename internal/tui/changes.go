package tui

import (
	"fmt"
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/ndquang/vietproof/internal/core/styles"
	"github.com/ndquang/vietproof/internal/corrector"
)

// previewMaxLen is the cutoff for original/corrected previews in the
// changes table. The full text stays in the session for the explanation
// pane.
const previewMaxLen = 80

// truncate shortens s to at most max characters, appending an ellipsis
// marker when anything was cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// changeItem is one corrected paragraph in the changes table. Position is
// the index into the full session result slice, which for a validated
// response equals the result's own index field.
type changeItem struct {
	result   corrector.Result
	position int
}

// FilterValue returns the value used for filtering.
func (i changeItem) FilterValue() string {
	return i.result.Original + " " + i.result.Corrected
}

// changeDelegate renders change rows.
// Line 1: #n  <original preview>
// Line 2:     <corrected preview>
type changeDelegate struct{}

func (d changeDelegate) Height() int  { return 2 }
func (d changeDelegate) Spacing() int { return 1 }

func (d changeDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d changeDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	change, ok := item.(changeItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	width := m.Width()
	if width <= 0 {
		width = 80
	}
	contentWidth := min(width-6, previewMaxLen)
	if contentWidth < 8 {
		contentWidth = 8
	}

	// 1-based display index, as rendered in the web table.
	idx := styles.RowIndexStyle.Render(fmt.Sprintf("#%d", change.result.Index+1))
	if isSelected {
		idx = styles.SelectedRowStyle.Render(fmt.Sprintf("#%d", change.result.Index+1))
	}

	original := styles.OriginalTextStyle.Render(truncate(change.result.Original, contentWidth))
	corrected := styles.CorrectedTextStyle.Render(truncate(change.result.Corrected, contentWidth))

	var prefix string
	if isSelected {
		prefix = styles.SelectedRowStyle.Render("┃") + " "
	} else {
		prefix = "  "
	}

	line1 := fmt.Sprintf("%s%s %s", prefix, idx, original)
	line2 := fmt.Sprintf("%s   %s", prefix, corrected)

	_, _ = fmt.Fprintf(w, "%s\n%s", line1, line2)
}

// newChangesList builds the list component for the changes table.
func newChangesList() list.Model {
	l := list.New(nil, changeDelegate{}, 0, 0)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.Styles.TitleBar = lipgloss.NewStyle()
	l.Styles.Title = lipgloss.NewStyle()
	return l
}

// buildChangeItems converts a correction response into table rows: exactly
// the results with changes, in original order.
func buildChangeItems(results []corrector.Result) []list.Item {
	var items []list.Item
	for i, res := range results {
		if res.HasChanges {
			items = append(items, changeItem{result: res, position: i})
		}
	}
	return items
}
