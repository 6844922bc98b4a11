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

package main

import (
	"flag"
	"io"
	"os"
	"testing"

	"github.com/RedHatInsights/insights-operator-utils/tests/helpers"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/RedHatInsights/crud-latency-benchmark/conf"
	"github.com/RedHatInsights/crud-latency-benchmark/types"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

func captureStdout(t *testing.T, f func()) string {
	originalStdOutFile := os.Stdout
	r, w, err := os.Pipe()
	helpers.FailOnError(t, err)
	os.Stdout = w

	f()

	helpers.FailOnError(t, w.Close())
	os.Stdout = originalStdOutFile
	out, err := io.ReadAll(r)
	helpers.FailOnError(t, err)
	return string(out)
}

func TestShowVersion(t *testing.T) {
	assert.Contains(t, captureStdout(t, showVersion), versionMessage)
}

func TestShowAuthors(t *testing.T) {
	assert.Contains(t, captureStdout(t, showAuthors), authorsMessage)
}

// TestShowConfiguration checks that configuration can be displayed
func TestShowConfiguration(t *testing.T) {
	config := conf.ConfigStruct{}
	config.Benchmark.Operations = []string{"json/update"}
	showConfiguration(&config)
}

// TestParseCliFlagsDefaults checks default values of all flags
func TestParseCliFlagsDefaults(t *testing.T) {
	cliFlags := parseCliFlags(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	assert.Equal(t, types.CliFlags{}, cliFlags)
}

// TestParseCliFlags checks that all flags are parsed
func TestParseCliFlags(t *testing.T) {
	cliFlags := parseCliFlags(flag.NewFlagSet("test", flag.ContinueOnError), []string{
		"-verbose",
		"-init-schema",
		"-truncate",
		"-gops",
		"-operations", "json/update,geometry/read",
		"-repetitions", "50",
		"-sample-size", "5",
		"-pool-size", "20",
		"-output", "results.xlsx",
		"-seed", "42",
	})

	assert.Equal(t, types.CliFlags{
		Verbose:      true,
		InitSchema:   true,
		TruncateOnly: true,
		Gops:         true,
		Operations:   "json/update,geometry/read",
		Repetitions:  50,
		SampleSize:   5,
		PoolSize:     20,
		Output:       "results.xlsx",
		Seed:         42,
	}, cliFlags)
}

// TestConvertLogLevel checks conversion of configured log levels
func TestConvertLogLevel(t *testing.T) {
	type testCase struct {
		level    string
		expected zerolog.Level
	}

	testCases := []testCase{
		{"debug", zerolog.DebugLevel},
		{" Info ", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"", zerolog.DebugLevel},
		{"unknown", zerolog.DebugLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			assert.Equal(t, tc.expected, convertLogLevel(tc.level))
		})
	}
}

// TestCheckArgsNoExit checks that valid arguments don't stop the process
func TestCheckArgsNoExit(t *testing.T) {
	checkArgs(&types.CliFlags{ShowConfiguration: true, Repetitions: 1})
}
