package export

import (
	"io"
	"strings"
)

// writeCSV emits the header line followed by one record per row, comma
// separated and newline terminated. Fields are written unquoted, which
// rules out encoding/csv: it quotes any field containing a separator.
func writeCSV(w io.Writer, table Table) error {
	if _, err := io.WriteString(w, strings.Join(table.Headers, ",")+"\n"); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if _, err := io.WriteString(w, strings.Join(row, ",")+"\n"); err != nil {
			return err
		}
	}
	return nil
}
