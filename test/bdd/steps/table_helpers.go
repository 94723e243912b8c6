package steps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
)

// tableRows returns the data rows of a table with a header row, keyed by column name
func tableRows(table *godog.Table) ([]map[string]string, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, fmt.Errorf("table has no header row")
	}
	header := table.Rows[0]
	out := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		out = append(out, rowValues(header, row))
	}
	return out, nil
}

func rowValues(header, row *messages.PickleTableRow) map[string]string {
	values := make(map[string]string, len(header.Cells))
	for i, cell := range header.Cells {
		if i < len(row.Cells) {
			values[cell.Value] = strings.TrimSpace(row.Cells[i].Value)
		}
	}
	return values
}

// intCell parses an integer column, treating an empty cell as zero
func intCell(values map[string]string, column string) (int, error) {
	raw := values[column]
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", column, err)
	}
	return n, nil
}

// splitList turns "KDEN, KMKC" into its trimmed, upper-cased elements
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToUpper(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
