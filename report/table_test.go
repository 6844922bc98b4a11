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

package report_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/RedHatInsights/insights-operator-utils/tests/helpers"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"github.com/RedHatInsights/crud-latency-benchmark/conf"
	"github.com/RedHatInsights/crud-latency-benchmark/report"
	"github.com/RedHatInsights/crud-latency-benchmark/types"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

func familyResults() []types.FamilyResult {
	return []types.FamilyResult{
		{
			Operation: types.Operation{DataType: types.DataTypeFull, Verb: types.VerbCreate},
			Durations: []time.Duration{250 * time.Millisecond, 500 * time.Millisecond, 750 * time.Millisecond},
		},
		{
			Operation: types.Operation{DataType: types.DataTypeJSON, Verb: types.VerbRead},
			Durations: []time.Duration{time.Second, 2 * time.Second},
		},
	}
}

// TestNewTable checks columns order, names and values of results table
func TestNewTable(t *testing.T) {
	table := report.NewTable(familyResults())

	assert.Len(t, table.Columns, 2)
	assert.Equal(t, "full_query_create", table.Columns[0].Name)
	assert.Equal(t, "json_query_read", table.Columns[1].Name)
	assert.Equal(t, []float64{0.25, 0.5, 0.75}, table.Columns[0].Seconds)
	assert.Equal(t, []float64{1, 2}, table.Columns[1].Seconds)
	assert.Equal(t, 3, table.Rows())
	assert.Equal(t, []string{"trial", "full_query_create", "json_query_read"}, table.Header())
}

// TestNewTableNoResults checks that empty table has just trial column
func TestNewTableNoResults(t *testing.T) {
	table := report.NewTable(nil)

	assert.Empty(t, table.Columns)
	assert.Equal(t, 0, table.Rows())
	assert.Equal(t, []string{"trial"}, table.Header())
}

// TestWriteCSV checks rows are written in trial order
func TestWriteCSV(t *testing.T) {
	buffer := new(bytes.Buffer)
	err := report.NewTable(familyResults()).WriteCSV(buffer)
	helpers.FailOnError(t, err)

	records, err := csv.NewReader(buffer).ReadAll()
	helpers.FailOnError(t, err)

	expected := [][]string{
		{"trial", "full_query_create", "json_query_read"},
		{"0", "0.25", "1"},
		{"1", "0.5", "2"},
		{"2", "0.75", ""},
	}
	assert.Equal(t, expected, records)
}

// TestExportCSV checks that CSV file is created
func TestExportCSV(t *testing.T) {
	output := filepath.Join(t.TempDir(), "results.csv")

	path, err := report.Export(report.NewTable(familyResults()), conf.ReportConfiguration{
		Format: "csv",
		Output: output,
	})
	helpers.FailOnError(t, err)
	assert.Equal(t, output, path)

	content, err := os.ReadFile(output)
	helpers.FailOnError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "trial,full_query_create,json_query_read\n"))
}

// TestExportXLSX checks that workbook with results sheet is created
func TestExportXLSX(t *testing.T) {
	output := filepath.Join(t.TempDir(), "results.xlsx")

	// format is taken from file extension
	path, err := report.Export(report.NewTable(familyResults()), conf.ReportConfiguration{
		Output: output,
	})
	helpers.FailOnError(t, err)
	assert.Equal(t, output, path)

	workbook, err := excelize.OpenFile(output)
	helpers.FailOnError(t, err)
	defer func() {
		helpers.FailOnError(t, workbook.Close())
	}()

	rows, err := workbook.GetRows(report.SheetName)
	helpers.FailOnError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, []string{"trial", "full_query_create", "json_query_read"}, rows[0])

	cell, err := workbook.GetCellValue(report.SheetName, "A4")
	helpers.FailOnError(t, err)
	assert.Equal(t, "2", cell)
}

// TestExportUnknownFormat checks that unsupported format is refused
func TestExportUnknownFormat(t *testing.T) {
	_, err := report.Export(report.NewTable(familyResults()), conf.ReportConfiguration{
		Format: "ods",
		Output: filepath.Join(t.TempDir(), "results.ods"),
	})
	assert.EqualError(t, err, `unsupported report format "ods"`)
}

// TestExportNoOutput checks that output file needs to be set
func TestExportNoOutput(t *testing.T) {
	_, err := report.Export(report.NewTable(familyResults()), conf.ReportConfiguration{
		Format: "csv",
	})
	assert.Error(t, err)
}

// TestResolveFormat checks format selection
func TestResolveFormat(t *testing.T) {
	type testCase struct {
		name     string
		config   conf.ReportConfiguration
		expected string
	}

	testCases := []testCase{
		{"configured csv", conf.ReportConfiguration{Format: "csv", Output: "out.xlsx"}, report.FormatCSV},
		{"configured xlsx", conf.ReportConfiguration{Format: " XLSX ", Output: "out.csv"}, report.FormatXLSX},
		{"from extension", conf.ReportConfiguration{Output: "out.XLSX"}, report.FormatXLSX},
		{"no extension", conf.ReportConfiguration{Output: "out"}, report.FormatCSV},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			format, err := report.ResolveFormat(tc.config)
			helpers.FailOnError(t, err)
			assert.Equal(t, tc.expected, format)
		})
	}
}
