package cli

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/pkg/canvas"
	"github.com/matzehuels/netgraph/pkg/diagram"
	"github.com/matzehuels/netgraph/pkg/pipeline"
	"github.com/matzehuels/netgraph/pkg/topology"
)

// exploreCommand creates the explore command, a terminal view of the
// diagram driven by the same hover logic as the window.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [counts...]",
		Short: "Walk the neurons in the terminal and watch hover emphasis",
		Long: `Show the network as columns of neurons in the terminal. The arrow keys
(or h/j/k/l) move a hover cursor; the neuron under it is entered exactly as
if the pointer had moved onto it in the window, and the panel lists the
connections it emphasizes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(cmd, args)
			if err != nil {
				return err
			}
			return c.runExplore(cmd.Context(), opts)
		},
	}
}

func (c *CLI) runExplore(ctx context.Context, opts pipeline.Options) error {
	drawn, err := pipeline.NewRunner(c.Logger).Draw(ctx, opts)
	if err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	m, err := NewExploreModel(drawn.Renderer, drawn.Scene)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(ExploreModel); ok && fm.Err != nil {
		return fm.Err
	}
	return nil
}

// Explorer styles
var (
	exploreCursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	exploreLinkedStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	exploreNeuronStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	exploreDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	exploreColumnHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true).MarginRight(3)
)

const (
	glyphNeuron = "○"
	glyphHover  = "●"
)

// =============================================================================
// ExploreModel - Interactive neuron hover
// =============================================================================

// ExploreModel is the bubbletea model for the explore command.
type ExploreModel struct {
	Renderer *diagram.Renderer
	Scene    *canvas.Scene
	Cursor   topology.NeuronID
	Height   int // visible neurons per column
	Err      error
}

// NewExploreModel creates a model with the cursor on the first neuron,
// which is entered immediately.
func NewExploreModel(r *diagram.Renderer, s *canvas.Scene) (ExploreModel, error) {
	m := ExploreModel{Renderer: r, Scene: s, Height: 12}
	if err := m.hover(); err != nil {
		return m, err
	}
	return m, nil
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	topo := m.Renderer.Topology()
	prev := m.Cursor

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Err = m.Scene.PointerExit()
			return m, tea.Quit
		case "up", "k":
			if m.Cursor.Index > 0 {
				m.Cursor.Index--
			}
		case "down", "j":
			if m.Cursor.Index < topo.Size(m.Cursor.Layer)-1 {
				m.Cursor.Index++
			}
		case "left", "h":
			if m.Cursor.Layer > 0 {
				m.Cursor.Layer--
			}
		case "right", "l":
			if m.Cursor.Layer < topo.Len()-1 {
				m.Cursor.Layer++
			}
		case "home", "g":
			m.Cursor.Index = 0
		case "end", "G":
			m.Cursor.Index = topo.Size(m.Cursor.Layer) - 1
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 14
		if m.Height < 3 {
			m.Height = 3
		}
	}

	if n := topo.Size(m.Cursor.Layer); m.Cursor.Index >= n {
		m.Cursor.Index = n - 1
	}
	if m.Cursor != prev {
		if err := m.hover(); err != nil {
			m.Err = err
			return m, tea.Quit
		}
	}
	return m, nil
}

// hover moves the scene's current item onto the cursor neuron.
func (m ExploreModel) hover() error {
	h, err := m.Renderer.NeuronHandle(m.Cursor)
	if err != nil {
		return err
	}
	return m.Scene.Hover(h)
}

// Emphasized counts the connections currently drawn at emphasized width.
func (m ExploreModel) Emphasized() int {
	n := 0
	for _, sh := range m.Scene.Shapes() {
		if sh.Kind == canvas.KindLine && sh.Width == diagram.EmphasizedWidth {
			n++
		}
	}
	return n
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore " + m.Renderer.Topology().String()))
	b.WriteString("\n")
	b.WriteString(exploreDimStyle.Render("←/→ layer  ↑/↓ neuron  g/G first/last  q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.columns())
	b.WriteString("\n\n")
	b.WriteString(m.details())
	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(styleIconError.Render(iconError + " " + m.Err.Error()))
	}
	return b.String()
}

// columns draws one column of neuron glyphs per layer. Columns taller than
// Height scroll to keep the cursor visible.
func (m ExploreModel) columns() string {
	topo := m.Renderer.Topology()
	cols := make([]string, topo.Len())
	for i := range topo.Len() {
		n := topo.Size(i)
		offset := 0
		if i == m.Cursor.Layer && m.Cursor.Index >= m.Height {
			offset = m.Cursor.Index - m.Height + 1
		}
		end := min(offset+m.Height, n)

		lines := []string{exploreColumnHeader.Render(fmt.Sprintf("L%d", i))}
		if offset > 0 {
			lines = append(lines, exploreDimStyle.Render(fmt.Sprintf("↑%d", offset)))
		}
		for j := offset; j < end; j++ {
			id := topology.NeuronID{Layer: i, Index: j}
			lines = append(lines, m.glyph(id))
		}
		if end < n {
			lines = append(lines, exploreDimStyle.Render(fmt.Sprintf("↓%d", n-end)))
		}
		cols[i] = lipgloss.NewStyle().MarginRight(3).Render(strings.Join(lines, "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m ExploreModel) glyph(id topology.NeuronID) string {
	switch {
	case id == m.Cursor:
		return exploreCursorStyle.Render(glyphHover)
	case id.Layer == m.Cursor.Layer-1 || id.Layer == m.Cursor.Layer+1:
		return exploreLinkedStyle.Render(glyphNeuron)
	default:
		return exploreNeuronStyle.Render(glyphNeuron)
	}
}

// details lists the emphasized connections of the cursor neuron with their
// resting weight colors.
func (m ExploreModel) details() string {
	incident := m.Renderer.Incident(m.Cursor)

	var b strings.Builder
	b.WriteString(StyleHighlight.Render("neuron "+m.Cursor.String()) +
		StyleDim.Render(fmt.Sprintf("  %d emphasized · %d dimmed",
			m.Emphasized(), len(m.Renderer.Connections())-len(incident))))
	b.WriteString("\n")

	const maxRows = 8
	rows := make([][]string, 0, maxRows)
	for _, id := range incident {
		if len(rows) == maxRows {
			break
		}
		dir := "in"
		if id.Source() == m.Cursor {
			dir = "out"
		}
		c, _ := m.Renderer.ConnectionColor(id)
		hex := hexColor(c)
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██")
		rows = append(rows, []string{dir, id.String(), swatch + " " + hex})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Connection", "Weight").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 0 {
				return exploreDimStyle
			}
			return lipgloss.NewStyle()
		})
	b.WriteString(tbl.Render())
	if more := len(incident) - len(rows); more > 0 {
		b.WriteString("\n")
		b.WriteString(exploreDimStyle.Render(fmt.Sprintf("  … %d more", more)))
	}
	return b.String()
}

func hexColor(c color.RGBA) string {
	cc, _ := colorful.MakeColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	return cc.Hex()
}
