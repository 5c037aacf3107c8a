package style

import (
	"github.com/pterm/pterm"
)

// RenderTable lays out rows under a header row. Cells may carry styling.
func RenderTable(header []string, rows [][]string) (string, error) {
	data := pterm.TableData{header}
	data = append(data, rows...)

	return pterm.DefaultTable.
		WithHasHeader().
		WithData(data).
		Srender()
}
