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

package report

import (
	"fmt"
	"io"
	"time"

	"github.com/RedHatInsights/crud-latency-benchmark/types"
)

const (
	summaryBorderTop    = "┌──────────────────────┬────────┬──────────────┬──────────────┐\n"
	summaryBorderMiddle = "├──────────────────────┼────────┼──────────────┼──────────────┤\n"
	summaryBorderBottom = "└──────────────────────┴────────┴──────────────┴──────────────┘\n"
	summaryRowFormat    = "│  %-20s│  %-6s│  %-12s│  %-12s│\n"
)

// FormatDuration returns duration rounded to microseconds below one
// millisecond and to hundredths of millisecond above.
func FormatDuration(d time.Duration) string {
	us := float64(d.Microseconds())
	if us < 1000 {
		return fmt.Sprintf("%.0fµs", us)
	}
	return fmt.Sprintf("%.2fms", us/1000)
}

// PrintSummary writes a box drawn table with number of trials, mean and
// total duration of every operation family.
func PrintSummary(w io.Writer, results []types.FamilyResult) error {
	if _, err := fmt.Fprint(w, summaryBorderTop); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, summaryRowFormat, "Operation", "Trials", "Mean", "Total"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, summaryBorderMiddle); err != nil {
		return err
	}

	for _, result := range results {
		_, err := fmt.Fprintf(w, summaryRowFormat,
			result.Operation.String(),
			fmt.Sprint(len(result.Durations)),
			FormatDuration(result.Mean()),
			FormatDuration(result.Sum()))
		if err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, summaryBorderBottom)
	return err
}
