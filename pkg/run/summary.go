package run

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderSummary formats the per-show counters as the run's closing report.
func RenderSummary(summary []Counters) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Show", "Built", "Skipped", "Failed", "Sponsors", "Participants"})

	for _, c := range summary {
		tw.AppendRow(table.Row{
			c.Show,
			strconv.Itoa(c.Built),
			strconv.Itoa(c.Skipped),
			strconv.Itoa(c.Failed),
			strconv.Itoa(c.Sponsors),
			strconv.Itoa(c.Participants),
		})
	}

	configs := make([]table.ColumnConfig, 0, 6)
	for i := 2; i <= 6; i++ {
		configs = append(configs, table.ColumnConfig{
			Number:      i,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
