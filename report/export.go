package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// WriteXLSX saves the report as a workbook with an overview sheet followed
// by one path/value sheet per view. Nothing is saved if any cell fails.
func WriteXLSX(r *Report, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	w := &sheetWriter{f: f}

	w.cell(summarySheet, 1, 1, "Source")
	w.cell(summarySheet, 2, 1, r.Source)
	w.cell(summarySheet, 1, 2, "Records")
	w.cell(summarySheet, 2, 2, r.Total)
	for i, h := range []string{"Analysis", "Fields", "Headline"} {
		w.cell(summarySheet, i+1, 4, h)
	}
	for i, s := range r.Sections {
		w.cell(summarySheet, 1, i+5, string(s.Kind))
		w.cell(summarySheet, 2, i+5, len(Flatten(s.Data)))
		w.cell(summarySheet, 3, i+5, headline(s))
	}
	w.width(summarySheet, "A", 26)
	w.width(summarySheet, "C", 60)

	for _, s := range r.Sections {
		sheet := string(s.Kind)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("xlsx: new sheet %s: %w", sheet, err)
		}
		w.cell(sheet, 1, 1, "Path")
		w.cell(sheet, 2, 1, "Value")
		for i, row := range Flatten(s.Data) {
			w.cell(sheet, 1, i+2, row.Path)
			w.cell(sheet, 2, i+2, row.Value.Interface())
		}
		w.width(sheet, "A", 48)
		w.width(sheet, "B", 24)
	}
	if w.err != nil {
		return w.err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx: save %s: %w", path, err)
	}
	return nil
}

// sheetWriter keeps the first error from a run of cell writes.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) cell(sheet string, col, row int, v any) {
	if w.err != nil {
		return
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = fmt.Errorf("xlsx: %s cell (%d,%d): %w", sheet, col, row, err)
		return
	}
	if err := w.f.SetCellValue(sheet, name, v); err != nil {
		w.err = fmt.Errorf("xlsx: %s!%s: %w", sheet, name, err)
	}
}

func (w *sheetWriter) width(sheet, col string, width float64) {
	if w.err != nil {
		return
	}
	if err := w.f.SetColWidth(sheet, col, col, width); err != nil {
		w.err = fmt.Errorf("xlsx: %s column %s width: %w", sheet, col, err)
	}
}

// WriteCSV saves the flattened report as analysis,path,value rows.
func WriteCSV(r *Report, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"analysis", "path", "value"}); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, s := range r.Sections {
		for _, row := range Flatten(s.Data) {
			if err := w.Write([]string{string(s.Kind), row.Path, row.Text()}); err != nil {
				return fmt.Errorf("csv: write row: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return file.Close()
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("report: create output dir: %w", err)
	}
	return nil
}
