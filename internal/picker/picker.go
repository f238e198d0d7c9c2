// Package picker implements the interactive quick-pick: a filter input over
// the package index, re-ranked on every keystroke.
package picker

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/uvpick/internal/search"
)

// visibleRows caps how many candidates render at once; ranking itself is
// capped separately by the search options.
const visibleRows = 12

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	countStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type model struct {
	input   textinput.Model
	records []search.Record
	opts    search.Options

	cands  []search.Candidate
	cursor int
	offset int

	choice   string
	quitting bool
}

func newModel(records []search.Record, opts search.Options) model {
	ti := textinput.New()
	ti.Placeholder = "Type to filter packages"
	ti.Prompt = "> "
	ti.Focus()

	return model{
		input:   ti,
		records: records,
		opts:    opts,
		cands:   search.Rank(records, "", opts),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			if m.cursor < len(m.cands) {
				m.choice = m.cands[m.cursor].Label
			}
			m.quitting = true
			return m, tea.Quit

		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
			return m, nil

		case tea.KeyDown:
			if m.cursor < len(m.cands)-1 {
				m.cursor++
				if m.cursor >= m.offset+visibleRows {
					m.offset = m.cursor - visibleRows + 1
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		// Candidates are ephemeral: recomputed per keystroke, never reused
		// across queries.
		m.cands = search.Rank(m.records, m.input.Value(), m.opts)
		m.cursor = 0
		m.offset = 0
	}
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	s := m.input.View() + "\n\n"

	if len(m.cands) == 0 {
		s += detailStyle.Render("No matching packages") + "\n"
		return s
	}

	end := m.offset + visibleRows
	if end > len(m.cands) {
		end = len(m.cands)
	}

	for i := m.offset; i < end; i++ {
		c := m.cands[i]
		line := fmt.Sprintf("%s  %s", c.Label, detailStyle.Render(c.Detail))
		if i == m.cursor {
			line = selectedStyle.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		s += line + "\n"
	}

	s += "\n" + countStyle.Render(fmt.Sprintf("%d candidates · enter to select · esc to cancel", len(m.cands)))
	return s
}

// Pick shows the quick-pick and returns the selected project name. The
// second result is false when the user dismissed the prompt, which simply
// ends the current command invocation.
func Pick(records []search.Record, opts search.Options) (string, bool, error) {
	p := tea.NewProgram(newModel(records, opts))
	out, err := p.Run()
	if err != nil {
		return "", false, fmt.Errorf("quick-pick failed: %w", err)
	}

	final := out.(model)
	if final.choice == "" {
		return "", false, nil
	}
	return search.StripRankPrefix(final.choice), true, nil
}
