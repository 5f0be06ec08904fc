package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/drilldown-menu/internal/menu"
	"github.com/atomicstack/drilldown-menu/internal/router"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	maxPanelWidth   = 48
	toggleGlyph     = "☰ "
	closeGlyph      = "×"
	backGlyph       = "‹ "
	branchGlyph     = " ›"
	itemIndicator   = "▌"
	resultIndicator = "  "
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
	zone          string
}

// row is one rendered line plus what a click on it activates.
type row struct {
	line   styledLine
	target string
	// result is the 1-based index of a search result, 0 for other rows.
	result int
}

// zoneID names the click zone of the row, "" when it activates nothing.
func (r row) zoneID() string {
	if r.result > 0 {
		return fmt.Sprintf("@result-%d", r.result)
	}
	return r.target
}

// View implements tea.Model.
func (m *Model) View() string {
	return m.zones.Scan(m.render())
}

// render draws the panel with every clickable row marked as a zone.
func (m *Model) render() string {
	rows := m.layout()
	lines := make([]styledLine, len(rows))
	for i, r := range rows {
		lines[i] = r.line
		lines[i].zone = r.zoneID()
	}
	width := m.panelWidth()
	lines = limitHeight(lines, m.height, width)
	lines = applyWidth(lines, width)
	return m.place(renderLines(lines, m.zones.Mark))
}

// layout lists every row top to bottom.
func (m *Model) layout() []row {
	rows := make([]row, 0, 16)
	rows = append(rows, m.toggleRow())
	if m.view.Open {
		rows = append(rows, row{
			line:   styledLine{text: closeGlyph + " close", style: styles.Close},
			target: router.CloseTarget,
		})
		if header := m.menuHeader(); header != "" {
			rows = append(rows, row{line: styledLine{text: header, style: styles.Header}})
		}
		if m.view.SearchVisible {
			rows = append(rows, m.searchRows()...)
		}
		tree := m.menu.Tree()
		for _, id := range tree.Level(m.view.Level) {
			if node, ok := tree.Find(id); ok {
				rows = append(rows, m.entryRow(node))
			}
		}
	}
	if m.errMsg != "" {
		rows = append(rows, row{}, row{line: styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}})
	}
	if m.showFooter {
		rows = append(rows, row{}, row{line: styledLine{text: m.footer(), raw: true}})
	}
	return rows
}

func (m *Model) toggleRow() row {
	style := styles.Toggle
	if m.view.Open {
		style = styles.ToggleActive
	}
	return row{
		line:   styledLine{text: toggleGlyph + m.menu.Tree().ToggleLabel(), style: style},
		target: router.ToggleTarget,
	}
}

func (m *Model) entryRow(node *menu.Node) row {
	focused := node.ID == m.view.Focus
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	label := node.Label
	switch node.Kind {
	case menu.KindBack:
		label = backGlyph + label
		lineStyle = styles.Back
	case menu.KindBranch:
		label += branchGlyph
		lineStyle = styles.Branch
	case menu.KindBackRegion:
		// The sliver of the parent level; pointer-only, never focused.
		return row{
			line:   styledLine{text: "  " + backGlyph + label, style: styles.BackRegion},
			target: node.ID,
		}
	}
	if focused {
		lineStyle = styles.FocusedItem
		indicatorStyle = styles.FocusedIndicator
	}
	text := itemIndicator + " " + label
	if width := m.panelWidth(); width > 0 {
		if pad := width - len([]rune(text)); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return row{
		line: styledLine{
			text:          text,
			style:         lineStyle,
			prefixStyle:   indicatorStyle,
			highlightFrom: 1,
		},
		target: node.ID,
	}
}

func (m *Model) searchRows() []row {
	rows := []row{{line: styledLine{text: m.search.View(), raw: true}}}
	query := strings.TrimSpace(m.search.Value())
	if query == "" {
		return rows
	}
	if len(m.results) == 0 {
		return append(rows, row{line: styledLine{text: fmt.Sprintf("No matches for %q", query), style: styles.Info}})
	}
	for i, r := range m.results {
		style := styles.SearchMatch
		if i == m.resultCursor {
			style = styles.FocusedItem
		}
		rows = append(rows, row{
			line:   styledLine{text: resultIndicator + r.path, style: style},
			result: i + 1,
		})
	}
	return rows
}

// menuHeader is the breadcrumb of the active path, rooted at the toggle label.
func (m *Model) menuHeader() string {
	if len(m.view.ActivePath) == 0 {
		return ""
	}
	tree := m.menu.Tree()
	segments := []string{tree.ToggleLabel()}
	for _, id := range m.view.ActivePath {
		if node, ok := tree.Find(id); ok {
			segments = append(segments, node.Label)
		}
	}
	return strings.Join(segments, menuHeaderSeparator)
}

func (m *Model) footer() string {
	bindings := append([]key.Binding(nil), m.menu.Keys().ShortHelp()...)
	if m.searchEnabled {
		bindings = append(bindings, key.NewBinding(key.WithKeys(searchKey), key.WithHelp(searchKey, "search")))
	}
	bindings = append(bindings, key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")))
	return m.help.ShortHelpView(bindings)
}

// panelWidth is the width of the menu panel; 0 leaves lines unconstrained.
func (m *Model) panelWidth() int {
	if m.width <= 0 {
		return 0
	}
	if m.width < maxPanelWidth {
		return m.width
	}
	return maxPanelWidth
}

// place anchors the panel to the configured edge of the terminal.
func (m *Model) place(body string) string {
	if m.width <= 0 {
		return body
	}
	align := lipgloss.Left
	if m.view.Position == "right" {
		align = lipgloss.Right
	}
	return lipgloss.PlaceHorizontal(m.width, align, body)
}

// handleMouseMsg routes left clicks on menu rows as activations.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if ev.Action != tea.MouseActionPress || ev.Button != tea.MouseButtonLeft {
		return nil
	}
	for _, r := range m.visibleRows() {
		id := r.zoneID()
		if id == "" {
			continue
		}
		if info := m.zones.Get(id); info == nil || !info.InBounds(ev) {
			continue
		}
		if r.result > 0 {
			m.resultCursor = r.result - 1
			return m.pickResult()
		}
		return m.activate(r.target)
	}
	return nil
}

// visibleRows drops the rows limitHeight replaces with the ellipsis.
func (m *Model) visibleRows() []row {
	rows := m.layout()
	if m.height <= 0 || len(rows) <= m.height {
		return rows
	}
	if m.height == 1 {
		return nil
	}
	return rows[:m.height-1]
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.panelWidth()
	return nil
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		if line.raw {
			if lipgloss.Width(line.text) > width {
				line.text = truncate.StringWithTail(line.text, uint(width-1), "…")
			}
		} else {
			line.text = truncateText(line.text, width)
		}
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine, mark func(id, v string) string) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		if line.zone != "" && mark != nil {
			text = mark(line.zone, text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
