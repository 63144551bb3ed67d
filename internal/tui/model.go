package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"semscore/internal/aggregate"
	"semscore/internal/domain"
)

// Model is the Bubble Tea model for browsing a comparison result. Chunks
// are listed worst-first so the weakest-matching regions come up first.
type Model struct {
	summary  domain.Summary
	chunks   []domain.ChunkDetail
	viewport viewport.Model
	cursor   int
	ready    bool
}

// New creates a new TUI model over the given summary.
func New(summary domain.Summary) Model {
	chunks := aggregate.WorstChunks(summary, len(summary.PerChunk))
	vp := viewport.New(0, 0)
	return Model{summary: summary, chunks: chunks, viewport: vp}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := chunkBoxStyle.GetFrameSize()
		totalHeaderLines := 5 // title + three stat lines + chunk count
		totalFooterLines := 1 // help
		vh := msg.Height - totalHeaderLines - totalFooterLines - 1
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width)
		m.viewport.Height = maxInt(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentChunk())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "down", "j":
			if len(m.chunks) > 0 {
				m.cursor = (m.cursor + 1) % len(m.chunks)
				m.viewport.SetContent(m.renderCurrentChunk())
			}
			return m, nil
		case "up", "k":
			if len(m.chunks) > 0 {
				m.cursor = (m.cursor - 1 + len(m.chunks)) % len(m.chunks)
				m.viewport.SetContent(m.renderCurrentChunk())
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the summary header, the selected chunk, and key help.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Semantic similarity")
	stats := statsLine("Precision", m.summary.Precision) + "\n" +
		statsLine("Recall   ", m.summary.Recall) + "\n" +
		statsLine("F1       ", m.summary.F1)
	count := dimStyle.Render(fmt.Sprintf("%d chunk pairs, worst first", m.summary.Chunks))
	help := dimStyle.Render("up/down: browse chunks  q: quit")
	body := chunkBoxStyle.Render(m.viewport.View())
	return header + "\n" + stats + "\n" + count + "\n" + body + "\n" + help
}

func (m Model) renderCurrentChunk() string {
	if len(m.chunks) == 0 {
		return "No chunks."
	}
	c := m.chunks[m.cursor]
	title := fmt.Sprintf("Chunk #%d (%d/%d)  F1=%.4f  P=%.4f  R=%.4f",
		c.Position, m.cursor+1, len(m.chunks), c.F1, c.Precision, c.Recall)
	if c.F1 <= m.summary.F1.Min {
		title = worstStyle.Render(title)
	}
	cand := fmt.Sprintf("Candidate (%d words):\n%s", c.CandidateWords, excerptOrEmpty(c.CandidateExcerpt))
	ref := fmt.Sprintf("Reference (%d words):\n%s", c.ReferenceWords, excerptOrEmpty(c.ReferenceExcerpt))
	return title + "\n\n" + cand + "\n\n" + ref
}

func excerptOrEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return dimStyle.Render("(empty)")
	}
	return s
}

func statsLine(label string, s domain.Stats) string {
	return fmt.Sprintf("  %s mean=%.4f weighted=%.4f min=%.4f max=%.4f", label, s.Mean, s.Weighted, s.Min, s.Max)
}

var (
	chunkBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	worstStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
