/*
Copyright © 2026 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package report contains functions to export measured trial durations as
// a results table (CSV or XLSX), to print a human readable summary of all
// operation families and to upload exported tables into S3 compatible
// storage.
package report

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/crud-latency-benchmark/report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/RedHatInsights/crud-latency-benchmark/conf"
	"github.com/RedHatInsights/crud-latency-benchmark/types"
)

// Supported export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// SheetName is the name of the worksheet written into XLSX exports.
const SheetName = "results"

// TrialColumnName is the header of the first column holding trial index.
const TrialColumnName = "trial"

const (
	formatMessage = "Format"
	outputMessage = "Output"
)

// Column contains durations, in seconds, of all trials of one operation
// family.
type Column struct {
	Name    string
	Seconds []float64
}

// Table is the results table: one column per operation family in run
// order, one row per trial.
type Table struct {
	Columns []Column
}

// NewTable constructs results table from family results.
func NewTable(results []types.FamilyResult) Table {
	columns := make([]Column, 0, len(results))
	for _, result := range results {
		seconds := make([]float64, len(result.Durations))
		for i, duration := range result.Durations {
			seconds[i] = duration.Seconds()
		}
		columns = append(columns, Column{
			Name:    result.Operation.ColumnName(),
			Seconds: seconds,
		})
	}
	return Table{Columns: columns}
}

// Rows returns number of data rows, ie. the highest number of trials
// measured by any family.
func (t Table) Rows() int {
	rows := 0
	for _, column := range t.Columns {
		if len(column.Seconds) > rows {
			rows = len(column.Seconds)
		}
	}
	return rows
}

// Header returns the header row of the table.
func (t Table) Header() []string {
	header := make([]string, 0, len(t.Columns)+1)
	header = append(header, TrialColumnName)
	for _, column := range t.Columns {
		header = append(header, column.Name)
	}
	return header
}

// WriteCSV writes the table in CSV format. Cells of families with fewer
// trials than others are left empty.
func (t Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Header()); err != nil {
		return err
	}

	for row := 0; row < t.Rows(); row++ {
		record := make([]string, 0, len(t.Columns)+1)
		record = append(record, strconv.Itoa(row))
		for _, column := range t.Columns {
			cell := ""
			if row < len(column.Seconds) {
				cell = strconv.FormatFloat(column.Seconds[row], 'f', -1, 64)
			}
			record = append(record, cell)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveCSV stores the table into CSV file.
func (t Table) SaveCSV(path string) (err error) {
	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer func() {
		closeErr := file.Close()
		if err == nil {
			err = closeErr
		}
	}()

	return t.WriteCSV(file)
}

// SaveXLSX stores the table into worksheet "results" of new XLSX workbook.
func (t Table) SaveXLSX(path string) (err error) {
	workbook := excelize.NewFile()
	defer func() {
		closeErr := workbook.Close()
		if err == nil {
			err = closeErr
		}
	}()

	if err = workbook.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	header := make([]interface{}, 0, len(t.Columns)+1)
	for _, name := range t.Header() {
		header = append(header, name)
	}
	if err = workbook.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	for row := 0; row < t.Rows(); row++ {
		values := make([]interface{}, 0, len(t.Columns)+1)
		values = append(values, row)
		for _, column := range t.Columns {
			if row < len(column.Seconds) {
				values = append(values, column.Seconds[row])
			} else {
				values = append(values, nil)
			}
		}

		// first row is occupied by header
		cell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return err
		}
		if err = workbook.SetSheetRow(SheetName, cell, &values); err != nil {
			return err
		}
	}

	return workbook.SaveAs(path)
}

// ResolveFormat returns export format taken from configuration or, when
// not configured, from the output file extension.
func ResolveFormat(configuration conf.ReportConfiguration) (string, error) {
	format := strings.ToLower(strings.TrimSpace(configuration.Format))
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(configuration.Output)), ".")
	}

	switch format {
	case FormatCSV, FormatXLSX:
		return format, nil
	case "":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", format)
	}
}

// Export stores the table into file specified in configuration and returns
// path to the file.
func Export(table Table, configuration conf.ReportConfiguration) (string, error) {
	if configuration.Output == "" {
		return "", fmt.Errorf("report output file is not set")
	}

	format, err := ResolveFormat(configuration)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatXLSX:
		err = table.SaveXLSX(configuration.Output)
	default:
		err = table.SaveCSV(configuration.Output)
	}
	if err != nil {
		return "", err
	}

	log.Info().
		Str(formatMessage, format).
		Str(outputMessage, configuration.Output).
		Int("Columns", len(table.Columns)).
		Int("Rows", table.Rows()).
		Msg("Results table exported")
	return configuration.Output, nil
}
