package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// ExportFileName is the name of the file written by ExportFile.
const ExportFileName = "table-export.csv"

// WriteCSV writes the header of column labels followed by one line per row of
// raw field values. Records are separated by "\n" with no trailing newline.
// Render functions are not applied.
func WriteCSV(w io.Writer, columns []Column, rows []Row) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Label
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(columns))
	for _, r := range rows {
		for i, c := range columns {
			record[i] = formatValue(r[c.Key])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	out := strings.TrimSuffix(buf.String(), "\n")
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// writeCSVFile writes the export into dir and returns the full path.
func writeCSVFile(dir string, columns []Column, rows []Row) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, ExportFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := WriteCSV(f, columns, rows); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}

// Printer is the host facility that receives a printable view.
type Printer interface {
	Print(title, text string) error
}

// PrinterFunc adapts a function to the Printer interface.
type PrinterFunc func(title, text string) error

// Print calls f.
func (f PrinterFunc) Print(title, text string) error { return f(title, text) }

// RenderText renders rows as a plain text grid using the cell renderer, so
// custom Render output is what gets printed.
func RenderText(columns []Column, rows []Row) string {
	var buf bytes.Buffer
	tw := tablewriter.NewWriter(&buf)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Label
	}
	tw.SetHeader(header)
	for _, r := range rows {
		line := make([]string, len(columns))
		for i, c := range columns {
			line[i] = RenderCell(c, r).Text
		}
		tw.Append(line)
	}
	tw.Render()
	return buf.String()
}
