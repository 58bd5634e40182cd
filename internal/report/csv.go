package report

import (
	"encoding/csv"
	"io"

	"github.com/goodric/api-docs-tool/internal/endpoint"
)

// csvHeader mirrors the HTML table columns in the flat export.
var csvHeader = []string{"Method", "Path", "Full URL", "Status", "Length", "Name"}

// WriteCSV writes the aggregated endpoint sequence as CSV, same rows in
// the same order as the HTML report.
func WriteCSV(w io.Writer, endpoints []endpoint.Probed) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, ep := range endpoints {
		row := []string{
			ep.Method,
			ep.Path,
			ep.FullURL,
			StatusLabel(ep.Outcome),
			FormatLength(ep.Outcome),
			ep.Name(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
