package analytics

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"niftyOptionsBot/internal/domain"
)

// WriteTradeTable renders the closed-trade log as a table.
func WriteTradeTable(w io.Writer, trades []*domain.Trade) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Symbol", "Dir", "Entry", "Exit", "Qty", "PNL", "Reason", "Entry Time", "Exit Time"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, t := range trades {
		table.Append([]string{
			t.Symbol,
			string(t.Direction),
			fmt.Sprintf("%.2f", t.EntryPrice),
			fmt.Sprintf("%.2f", t.ExitPrice),
			fmt.Sprintf("%d", t.Quantity),
			fmt.Sprintf("%.2f", t.PNL),
			string(t.CloseReason),
			t.EntryTime.Format("2006-01-02 15:04"),
			t.ExitTime.Format("2006-01-02 15:04"),
		})
	}
	table.Render()
}

// WriteMetricsTable renders the performance summary as a table.
func WriteMetricsTable(w io.Writer, m *PerformanceMetrics) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	rows := [][]string{
		{"Total trades", fmt.Sprintf("%d", m.TotalTrades)},
		{"Winning trades", fmt.Sprintf("%d", m.WinningTrades)},
		{"Losing trades", fmt.Sprintf("%d", m.LosingTrades)},
		{"Win rate", fmt.Sprintf("%.1f%%", m.WinRate*100)},
		{"Total PNL", fmt.Sprintf("%.2f", m.TotalPNL)},
		{"Average win", fmt.Sprintf("%.2f", m.AverageWin)},
		{"Average loss", fmt.Sprintf("%.2f", m.AverageLoss)},
		{"Profit factor", fmt.Sprintf("%.2f", m.ProfitFactor)},
		{"Max drawdown", fmt.Sprintf("%.1f%%", m.MaxDrawdown*100)},
		{"Expectancy", fmt.Sprintf("%.2f", m.Expectancy)},
		{"PNL std dev", fmt.Sprintf("%.2f", m.PNLStdDev)},
		{"Avg trade duration", m.AverageTradeDuration.String()},
		{"Final equity", fmt.Sprintf("%.2f", m.FinalEquity)},
	}
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}
