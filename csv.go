package macaw

import (
	"encoding/csv"
	"io"
	"strconv"
)

// csvHeader is the exact, literally-tested column order (§6).
var csvHeader = []string{
	"reaction_id", "reaction_equation", "dead_end_test", "dilution_test",
	"diphosphate_test", "duplicate_test_exact", "duplicate_test_directions",
	"duplicate_test_coefficients", "duplicate_test_redox", "loop_test", "pathway",
}

// WriteCSV persists t to w in the §6 "Persisted form" layout: one header
// row followed by one row per reaction, in t.Rows order.
func WriteCSV(w io.Writer, t *ResultsTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, row := range t.Rows {
		record := []string{
			row.ReactionID,
			row.ReactionEquation,
			string(row.DeadEndTest),
			string(row.DilutionTest),
			string(row.DiphosphateTest),
			string(row.DuplicateExact),
			string(row.DuplicateDirection),
			string(row.DuplicateCoeff),
			string(row.DuplicateRedox),
			string(row.LoopTest),
			strconv.Itoa(row.Pathway),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
