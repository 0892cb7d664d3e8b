package main

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
	"text/template"
)

const emptyTableMessage = "(empty)"

// TemplateFunctionMap is the only way screen templates print backend data; every helper escapes its input.
var TemplateFunctionMap = template.FuncMap{
	"escape": escapeTerminal,

	"renderTable": renderTable,

	"renderSelect": renderSelect,
}

func renderTable(table Table) string {
	output := bytes.Buffer{}
	writer := tabwriter.NewWriter(&output, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(writer, strings.Join(table.Columns, "\t"))
	if len(table.Rows) == 0 {
		_, _ = fmt.Fprintln(writer, emptyTableMessage)
	}

	for _, row := range table.Rows {
		if row.Message != "" {
			prefix := ""
			if row.IsError {
				prefix = "! "
			}
			_, _ = fmt.Fprintln(writer, prefix+escapeTerminal(row.Message))
			continue
		}

		cells := make([]string, len(row.Cells), len(row.Cells)+1)
		for i, cell := range row.Cells {
			cells[i] = escapeTerminal(cell)
		}
		if len(row.Actions) != 0 {
			cells = append(cells, renderActions(row.Actions))
		}
		_, _ = fmt.Fprintln(writer, strings.Join(cells, "\t"))
	}

	_ = writer.Flush()

	return output.String()
}

func renderActions(actions []RowAction) string {
	rendered := make([]string, len(actions))
	for i, action := range actions {
		rendered[i] = fmt.Sprintf("[%s %d]", action.Command, action.RowId)
	}

	return strings.Join(rendered, " ")
}

func renderSelect(options Select) string {
	if options.Placeholder == "" {
		return ""
	}

	output := strings.Builder{}
	output.WriteString(escapeTerminal(options.Placeholder) + "\n")
	for _, option := range options.Options {
		_, _ = fmt.Fprintf(&output, "  %s = %s\n", escapeTerminal(option.Value), escapeTerminal(option.Label))
	}

	return output.String()
}
