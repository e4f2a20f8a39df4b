package utils

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/meysamhadeli/solid/config"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Table is a header row plus data rows, rendered when --output is table.
type Table struct {
	Header []string
	Rows   [][]string
}

// Render writes value in the requested format. Table output uses table;
// JSON and YAML encode value itself.
func Render(w io.Writer, format string, value any, table Table) error {
	switch format {
	case config.OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	case config.OutputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return RenderTable(w, table)
	}
}

// RenderTable prints a boxed table with a header row.
func RenderTable(w io.Writer, table Table) error {
	if len(table.Rows) == 0 {
		_, err := fmt.Fprintln(w, pterm.Gray("(none)"))
		return err
	}
	data := pterm.TableData{table.Header}
	data = append(data, table.Rows...)
	return pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithWriter(w).
		WithData(data).
		Render()
}
