package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/pkg/layout"
	"github.com/matzehuels/netgraph/pkg/topology"
)

// inspectCommand creates the inspect command, which prints the computed
// geometry without drawing anything.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [counts...]",
		Short: "Print layout parameters and connection groups",
		Long: `Print the solved layout: neuron size, layer gap, canvas size, and one row
per layer with its band, neuron count and the connections it sends to the
next layer.`,
		Example: `  netgraph inspect
  netgraph inspect 784 128 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(cmd, args)
			if err != nil {
				return err
			}
			opts.SetDrawDefaults()
			topo, err := opts.Topology()
			if err != nil {
				return err
			}
			l, err := layout.Compute(topo, opts.Canvas)
			if err != nil {
				return err
			}
			c.Logger.Debug("computed layout", "layout", l.String())
			fmt.Fprintln(cmd.OutOrStdout(), inspectReport(topo, l))
			return nil
		},
	}
	return cmd
}

// inspectReport renders the summary lines and the per-layer table.
func inspectReport(t topology.Topology, l layout.Layout) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Network " + t.String()))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	kv := func(k, v string) {
		b.WriteString(keyStyle.Render(k) + " " + StyleValue.Render(v) + "\n")
	}
	kv("neurons", strconv.Itoa(t.Neurons()))
	kv("connections", strconv.Itoa(t.ConnectionCount()))
	kv("canvas", fmt.Sprintf("%.0f × %.0f px", l.Width, l.Height))
	kv("neuron size", fmt.Sprintf("%.2f px", l.NeuronSize))
	gap := fmt.Sprintf("%.2f px", l.LayerGap)
	if l.LayerGap < l.Config.LayerGap {
		gap += StyleWarning.Render(fmt.Sprintf("  (squeezed from %.0f)", l.Config.LayerGap))
	}
	kv("layer gap", gap)
	b.WriteString("\n")

	groups := t.Groups()
	rows := make([][]string, 0, len(l.Bands))
	for i, band := range l.Bands {
		out := "—"
		if i < len(groups) {
			out = fmt.Sprintf("%d × %d = %d", t.Size(i), t.Size(i+1), groups[i])
		}
		x := l.Layers[i][0].X
		rows = append(rows, []string{
			strconv.Itoa(i),
			band.Label,
			band.Role.String(),
			strconv.Itoa(band.Neurons),
			fmt.Sprintf("%.1f", x),
			fmt.Sprintf("%.1f – %.1f", band.Left, band.Right),
			out,
		})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Band", "Role", "Neurons", "x", "Band span", "Connections out").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			switch col {
			case 0, 4, 5:
				return lipgloss.NewStyle().Foreground(colorDim)
			case 3, 6:
				return StyleNumber
			}
			return StyleValue
		})

	b.WriteString(tbl.Render())
	return b.String()
}
