package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// csvHeader is the fixed column order of the export.
var csvHeader = []string{"browser", "domain", "name", "value", "path", "expires", "secure", "httponly", "samesite"}

// WriteCSV serializes records to w, one row per record, with the fixed
// header. This is the only operation whose failure is fatal to a run: if the
// export cannot be written there is nothing left to salvage.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Source,
			r.Domain,
			r.Name,
			r.Value,
			r.Path,
			r.Expires,
			strconv.FormatBool(r.Secure),
			strconv.FormatBool(r.HTTPOnly),
			strconv.Itoa(r.SameSite),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing export row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing export: %w", err)
	}
	return nil
}
