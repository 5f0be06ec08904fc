package ui

import (
	"sort"
	"strings"

	"github.com/atomicstack/drilldown-menu/internal/logging/events"
	"github.com/atomicstack/drilldown-menu/internal/menu"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	maxSearchResults = 8
	searchPathSep    = " › "
)

type searchResult struct {
	id    string
	label string
	path  string
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "» "
	ti.Placeholder = "type to search"
	ti.CharLimit = 64
	if styles.SearchPrompt != nil {
		ti.PromptStyle = styles.SearchPrompt.Copy()
	}
	if styles.Search != nil {
		ti.TextStyle = styles.Search.Copy()
	}
	if styles.SearchPlaceholder != nil {
		ti.PlaceholderStyle = styles.SearchPlaceholder.Copy()
	}
	return ti
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return m.menu.ToggleSearch()
	case "up":
		m.moveResult(-1)
		return nil
	case "down":
		m.moveResult(1)
		return nil
	case "enter":
		return m.pickResult()
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.refreshResults()
	}
	return cmd
}

func (m *Model) moveResult(delta int) {
	if len(m.results) == 0 {
		return
	}
	next := m.resultCursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.results) {
		next = len(m.results) - 1
	}
	m.resultCursor = next
}

// pickResult reveals the chosen entry inside the menu and hides the search
// affordance again.
func (m *Model) pickResult() tea.Cmd {
	if m.resultCursor < 0 || m.resultCursor >= len(m.results) {
		return nil
	}
	picked := m.results[m.resultCursor]
	revealed := m.menu.Reveal(picked.id)
	events.Search.Pick(m.menu.ID(), picked.id, revealed)
	if !revealed {
		return nil
	}
	return m.menu.ToggleSearch()
}

func (m *Model) refreshResults() {
	m.results = nil
	m.resultCursor = 0
	query := strings.TrimSpace(m.search.Value())
	if query == "" {
		return
	}
	candidates := searchCandidates(m.menu.Tree())
	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = c.label
	}
	ranks := fuzzy.RankFindNormalizedFold(query, labels)
	sort.Stable(ranks)
	for _, rank := range ranks {
		if len(m.results) == maxSearchResults {
			break
		}
		m.results = append(m.results, candidates[rank.OriginalIndex])
	}
	events.Search.Query(m.menu.ID(), query, len(m.results))
}

func (m *Model) resetSearch() {
	m.search.Reset()
	m.results = nil
	m.resultCursor = 0
}

// searchCandidates lists every real entry in markup order with the label
// path leading to it.
func searchCandidates(tree *menu.Tree) []searchResult {
	var out []searchResult
	tree.Walk(func(n *menu.Node) bool {
		if n.Kind != menu.KindLeaf && n.Kind != menu.KindBranch {
			return true
		}
		parts := make([]string, 0, n.Depth+1)
		for _, id := range tree.Ancestors(n.ID) {
			if anc, ok := tree.Find(id); ok {
				parts = append(parts, anc.Label)
			}
		}
		parts = append(parts, n.Label)
		out = append(out, searchResult{id: n.ID, label: n.Label, path: strings.Join(parts, searchPathSep)})
		return true
	})
	return out
}
