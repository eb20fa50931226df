package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/ndquang/vietproof/internal/core/styles"
	"github.com/ndquang/vietproof/internal/corrector"
)

const (
	headerHeight = 2 // title row + divider
	footerHeight = 1
	minPaneWidth = 20
)

// View renders the TUI.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	if m.width == 0 || m.height == 0 {
		return tea.NewView("Loading...")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderLeftColumn(), m.renderRightColumn())

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)

	if m.state == stateUploadPrompt {
		content = m.renderUploadPrompt(content)
	}

	v := tea.NewView(content)
	v.AltScreen = true
	return v
}

func (m Model) renderHeader() string {
	title := styles.CommandHeaderStyle.Render("VietProof")
	model := styles.StatusTextStyle.Render("model: " + corrector.ModelDisplayName(m.modelID))

	var dot string
	switch m.status {
	case statusReady:
		dot = styles.StatusReadyStyle.Render("●")
	case statusProcessing:
		dot = styles.StatusProcessingStyle.Render("●")
	case statusError:
		dot = styles.StatusErrorStyle.Render("●")
	}
	status := dot + " " + styles.StatusTextStyle.Render(m.stText)

	left := lipgloss.JoinHorizontal(lipgloss.Left, title, "  ", status)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(model) - 1
	if gap < 1 {
		gap = 1
	}

	header := lipgloss.JoinHorizontal(lipgloss.Left, left, pad(gap), model)
	divider := styles.DividerStyle.Render(strings.Repeat("─", m.width))
	return lipgloss.JoinVertical(lipgloss.Left, header, divider)
}

func (m Model) renderFooter() string {
	if m.progressText != "" {
		return lipgloss.JoinHorizontal(lipgloss.Left, m.spinner.View(), " ", styles.StatusProcessingStyle.Render(m.progressText))
	}

	help := "ctrl+r correct  ctrl+o open  ctrl+s save  ctrl+x clear  ctrl+t model  tab focus  ctrl+c quit"
	return styles.HelpStyle.Render(help)
}

func (m Model) renderLeftColumn() string {
	lw, _ := m.columnWidths()
	ih, oh := m.leftHeights()

	inputTitle := "Input"
	if text := m.input.Value(); text != "" {
		inputTitle = fmt.Sprintf("Input — %d words, %d paragraphs",
			corrector.CountWords(text), corrector.CountParagraphs(text))
	}

	outputTitle := "Corrected"
	if m.outputText != "" {
		outputTitle = fmt.Sprintf("Corrected — %d words", corrector.CountWords(m.outputText))
	}

	inputBody := m.input.View()
	outputBody := m.output.View()
	if m.outputText == "" {
		outputBody = styles.EmptyStateStyle.Render("Corrected text will appear here.")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderPane(inputTitle, inputBody, lw, ih, m.focus == focusInput && m.state != stateUploadPrompt),
		renderPane(outputTitle, outputBody, lw, oh, false),
	)
}

func (m Model) renderRightColumn() string {
	_, rw := m.columnWidths()
	ch, eh, lh := m.rightHeights()

	changesTitle := fmt.Sprintf("Changes (%d)", m.changesCount)
	changesBody := m.changes.View()
	if m.changesCount == 0 {
		changesBody = styles.EmptyStateStyle.Render("No changes yet.")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderPane(changesTitle, changesBody, rw, ch, m.focus == focusChanges),
		renderPane("Explanation", m.explanation.View(), rw, eh, false),
		renderPane("Activity", m.logView.View(), rw, lh, false),
	)
}

func (m Model) renderUploadPrompt(background string) string {
	prompt := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.PaneTitleStyle.Render("Open Document"),
		"",
		"Path to a .docx file:",
		m.uploadInput.View(),
		"",
		styles.HelpStyle.Render("enter open  esc cancel"),
	)

	modal := styles.PaneFocusedStyle.Render(prompt)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

// renderPane draws a bordered pane with a title line above the body.
func renderPane(title, body string, width, height int, focused bool) string {
	style := styles.PaneStyle
	titleStyle := styles.PaneTitleDimStyle
	if focused {
		style = styles.PaneFocusedStyle
		titleStyle = styles.PaneTitleStyle
	}

	inner := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), body)
	return style.Width(width - 2).Height(height - 2).Render(inner)
}

// columnWidths splits the window into the editor column and the results
// column.
func (m Model) columnWidths() (left, right int) {
	left = m.width / 2
	if left < minPaneWidth {
		left = minPaneWidth
	}
	right = m.width - left
	if right < minPaneWidth {
		right = minPaneWidth
	}
	return left, right
}

func (m Model) bodyHeight() int {
	h := m.height - headerHeight - footerHeight
	if h < 6 {
		h = 6
	}
	return h
}

func (m Model) leftHeights() (input, output int) {
	body := m.bodyHeight()
	input = body * 55 / 100
	if input < 3 {
		input = 3
	}
	output = body - input
	if output < 3 {
		output = 3
	}
	return input, output
}

func (m Model) rightHeights() (changes, explanation, activity int) {
	body := m.bodyHeight()
	changes = body * 40 / 100
	explanation = body * 30 / 100
	if changes < 3 {
		changes = 3
	}
	if explanation < 3 {
		explanation = 3
	}
	activity = body - changes - explanation
	if activity < 3 {
		activity = 3
	}
	return changes, explanation, activity
}

// resizePanes recomputes component dimensions after a window size change.
// Viewports are rebuilt with the new dimensions and their content restored.
func (m *Model) resizePanes() {
	lw, rw := m.columnWidths()
	ih, oh := m.leftHeights()
	ch, eh, lh := m.rightHeights()

	// Inner content area: border (2) + padding (2) wide, border (2) +
	// title line (1) tall.
	m.input.SetWidth(lw - 4)
	m.input.SetHeight(ih - 3)

	m.output = viewport.New(viewport.WithWidth(lw-4), viewport.WithHeight(oh-3))
	m.output.SetContent(m.outputText)

	m.changes.SetSize(rw-4, ch-3)

	m.explanation = viewport.New(viewport.WithWidth(rw-4), viewport.WithHeight(eh-3))
	m.explanation.SetContent(m.explainText)

	m.logView = viewport.New(viewport.WithWidth(rw-4), viewport.WithHeight(lh-3))
	m.refreshLog()

	m.uploadInput.SetWidth(min(48, m.width-12))
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
