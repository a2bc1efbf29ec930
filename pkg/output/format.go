// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/iwvelando/time-value/internal/calculator"
	"github.com/iwvelando/time-value/pkg/constants"
	"github.com/iwvelando/time-value/pkg/format"
	"github.com/iwvelando/time-value/pkg/tvm"
)

// Record is the machine-readable form of one calculation.
type Record struct {
	Mode           string                  `json:"mode"`
	Frequency      string                  `json:"frequency"`
	PeriodsPerYear float64                 `json:"periodsPerYear"`
	Amount         float64                 `json:"amount"`
	AnnualRate     float64                 `json:"annualRate"`
	Years          float64                 `json:"years"`
	Value          float64                 `json:"value"`
	Formatted      string                  `json:"formatted"`
	Description    string                  `json:"description"`
	FieldErrors    []calculator.FieldError `json:"fieldErrors,omitempty"`
	Error          string                  `json:"error,omitempty"`
}

// NewRecord flattens a calculator result.
func NewRecord(r calculator.Result) Record {
	rec := Record{
		Mode:           r.Mode.Token(),
		Frequency:      r.Input.Frequency.Token(),
		PeriodsPerYear: r.Input.Frequency.PeriodsPerYear(),
		Amount:         r.Input.Amount,
		AnnualRate:     r.Input.AnnualRate,
		Years:          r.Input.Years,
		Value:          tvm.TruncateToCents(r.Value),
		Formatted:      r.Formatted,
		Description:    r.Description,
		FieldErrors:    r.FieldErrors,
	}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	}
	return rec
}

// ComparisonRow is one line of a frequency comparison.
type ComparisonRow struct {
	Frequency      string  `json:"frequency"`
	Name           string  `json:"name"`
	PeriodsPerYear float64 `json:"periodsPerYear"`
	Value          float64 `json:"value"`
	Formatted      string  `json:"formatted"`
}

// NewComparisonRows converts comparisons for output.
func NewComparisonRows(rows []tvm.Comparison) []ComparisonRow {
	out := make([]ComparisonRow, 0, len(rows))
	for _, c := range rows {
		out = append(out, ComparisonRow{
			Frequency:      c.Frequency.Token(),
			Name:           c.Frequency.DisplayName(),
			PeriodsPerYear: c.Frequency.PeriodsPerYear(),
			Value:          tvm.TruncateToCents(c.Value),
			Formatted:      format.Amount(c.Value),
		})
	}
	return out
}

// WriteResult writes r to w in the named output format.
func WriteResult(w io.Writer, outputFormat string, r calculator.Result) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		return CSVFormat(w, []Record{NewRecord(r)})
	case constants.OutputFormatJSON:
		return JSONFormat(w, NewRecord(r))
	default:
		return PrettyFormat(w, r)
	}
}

// WriteComparison writes a frequency comparison to w in the named output
// format.
func WriteComparison(w io.Writer, outputFormat string, principal, annualRate, years float64, rows []tvm.Comparison) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		return ComparisonCSV(w, NewComparisonRows(rows))
	case constants.OutputFormatJSON:
		return JSONFormat(w, NewComparisonRows(rows))
	default:
		return ComparisonPretty(w, principal, annualRate, years, rows)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable result.
func PrettyFormat(w io.Writer, r calculator.Result) error {
	if _, err := fmt.Fprintln(w, r.Description); err != nil {
		return err
	}
	for _, fe := range r.FieldErrors {
		if _, err := fmt.Fprintf(w, "  ! %s\n", fe.Message); err != nil {
			return err
		}
	}
	if r.Err != nil {
		_, err := fmt.Fprintf(w, "  error: %v\n", r.Err)
		return err
	}
	_, err := fmt.Fprintf(w, "  $%s\n", r.Formatted)
	return err
}

// ComparisonPretty outputs the future value under each frequency as a table.
func ComparisonPretty(w io.Writer, principal, annualRate, years float64, rows []tvm.Comparison) error {
	if _, err := fmt.Fprintf(w, "--- Future value of %s at %s for %s years ---\n",
		format.Currency(principal), format.Percent(annualRate), format.Number(years)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-14s | %-8s | %s\n", "Frequency", "Periods", "Amount"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-14s | %-8s | %s\n", "_________", "_______", "______"); err != nil {
		return err
	}
	for _, c := range rows {
		if _, err := fmt.Fprintf(w, "%-14s | %-8s | %s\n",
			c.Frequency.DisplayName(), format.Number(c.Frequency.PeriodsPerYear()), format.Currency(c.Value)); err != nil {
			return err
		}
	}
	return nil
}

// CSVFormat outputs records in comma-separated value format.
func CSVFormat(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"mode", "frequency", "periods_per_year", "amount", "annual_rate", "years", "value", "description", "error"})
	for _, r := range records {
		value := fmt.Sprintf("%.2f", r.Value)
		if r.Error != "" {
			value = ""
		}
		_ = cw.Write([]string{
			r.Mode,
			r.Frequency,
			format.Number(r.PeriodsPerYear),
			format.Number(r.Amount),
			format.Number(r.AnnualRate),
			format.Number(r.Years),
			value,
			r.Description,
			r.Error,
		})
	}
	cw.Flush()
	return cw.Error()
}

// ComparisonCSV outputs comparison rows in comma-separated value format.
func ComparisonCSV(w io.Writer, rows []ComparisonRow) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"frequency", "name", "periods_per_year", "value"})
	for _, r := range rows {
		_ = cw.Write([]string{r.Frequency, r.Name, format.Number(r.PeriodsPerYear), fmt.Sprintf("%.2f", r.Value)})
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs v as indented JSON.
func JSONFormat(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
