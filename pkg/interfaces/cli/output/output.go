package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/fulfillment/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	// Stdout receives text output and file notices; os.Stdout when nil
	Stdout io.Writer
}

func (c Config) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

// Generate writes the report in the configured format
func Generate(report *dto.Report, config Config) error {
	stem := "fulfillment_" + shortRunID(report.RunID)
	return generate(report, reportTables(report), stem, config)
}

// GenerateSummary writes the executive summary in the configured format
func GenerateSummary(summary *dto.ExecutiveSummary, config Config) error {
	return generate(summary, summaryTables(summary), "fulfillment_summary", config)
}

func generate(payload any, tables []table, stem string, config Config) error {
	switch config.Format {
	case "", "text":
		return writeText(config.stdout(), tables)
	case "json":
		return generateJSONOutput(payload, stem, config)
	case "csv":
		return generateCSVOutput(tables, stem, config)
	case "xlsx":
		return generateXLSXOutput(tables, stem, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func shortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	if runID == "" {
		return "report"
	}
	return runID
}

// writeText renders each table as an aligned block
func writeText(w io.Writer, tables []table) error {
	for _, t := range tables {
		fmt.Fprintf(w, "📊 %s\n", t.title)
		fmt.Fprintf(w, "%s\n", strings.Repeat("=", len([]rune(t.title))+3))

		if len(t.rows) == 0 {
			fmt.Fprintf(w, "(sin datos)\n\n")
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(t.header, "\t"))
		for _, row := range t.rows {
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = cellText(v, "-")
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("failed to write %s table: %w", t.name, err)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(payload any, stem string, config Config) error {
	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.stdout(), string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, stem+".json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.stdout(), "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes one CSV file per table
func generateCSVOutput(tables []table, stem string, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for _, t := range tables {
		filename := filepath.Join(config.OutputDir, stem+"_"+t.name+".csv")
		if err := writeCSVFile(filename, t); err != nil {
			return fmt.Errorf("failed to write %s CSV: %w", t.name, err)
		}
		written = append(written, filename)
	}

	if config.Verbose {
		fmt.Fprintf(config.stdout(), "💾 CSV results saved to:\n")
		for _, filename := range written {
			fmt.Fprintf(config.stdout(), "  %s\n", filename)
		}
	}
	return nil
}

func writeCSVFile(filename string, t table) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(t.header); err != nil {
		return err
	}
	for _, row := range t.rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = cellText(v, "")
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return file.Close()
}

// generateXLSXOutput writes one workbook with a sheet per table
func generateXLSXOutput(tables []table, stem string, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for XLSX format")
	}
	if len(tables) == 0 {
		return fmt.Errorf("nothing to write")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), t.name); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", t.name, err)
			}
		} else if _, err := f.NewSheet(t.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", t.name, err)
		}

		header := make([]any, len(t.header))
		for j, h := range t.header {
			header[j] = h
		}
		if err := f.SetSheetRow(t.name, "A1", &header); err != nil {
			return fmt.Errorf("failed to write %s header: %w", t.name, err)
		}

		for r, row := range t.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			values := make([]any, len(row))
			for j, v := range row {
				values[j] = sheetValue(v)
			}
			if err := f.SetSheetRow(t.name, cell, &values); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", t.name, r+1, err)
			}
		}
	}

	filename := filepath.Join(config.OutputDir, stem+".xlsx")
	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.stdout(), "💾 XLSX results saved to: %s\n", filename)
	}
	return nil
}

// sheetValue keeps numbers numeric and leaves absent values blank
func sheetValue(v any) any {
	switch c := v.(type) {
	case []string:
		return strings.Join(c, " ")
	default:
		return c
	}
}
