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

// Entry point to the CRUD latency benchmark.
//
// The purpose of this tool is to measure how long it takes to create,
// read, update and delete rows of different column types in a PostgreSQL
// database with the PostGIS extension. Seven data type families (full
// record, text, integer, float, JSON, binary JSON and geometry) are
// combined with four CRUD verbs. Each of these 28 operation families is
// measured by a configurable number of trials, every trial touches a random
// sample of synthetic employee records one row at a time.
//
// Measured durations are printed as a summary table, exported into CSV or
// XLSX file with one column per operation family, optionally published to
// a Kafka topic, uploaded into S3 compatible storage and pushed to the
// Prometheus push gateway.
package main

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/crud-latency-benchmark/cmd/crud-latency-benchmark

import (
	"os"

	"github.com/RedHatInsights/insights-operator-utils/logger"
	"github.com/google/gops/agent"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/crud-latency-benchmark/conf"
	"github.com/RedHatInsights/crud-latency-benchmark/harness"
)

// Configuration-related constants
const (
	loadConfigurationMessage = "Load configuration"
)

func main() {
	cliFlags := setupCliFlags()
	checkArgs(&cliFlags)

	// config has exactly the same structure as *.toml file
	config, err := conf.LoadConfiguration(conf.ConfigFileEnvVariableName, conf.DefaultConfigFileName)
	if err != nil {
		log.Err(err).Msg(loadConfigurationMessage)
		os.Exit(ExitStatusConfiguration)
	}

	err = logger.InitZerolog(
		conf.GetLoggingConfiguration(&config),
		conf.GetCloudWatchConfiguration(&config),
		conf.GetSentryLoggingConfiguration(&config),
		conf.GetKafkaZerologConfiguration(&config),
	)
	if err != nil {
		log.Err(err).Msg(loadConfigurationMessage)
		os.Exit(ExitStatusConfiguration)
	}

	// configuration is loaded, so it would be possible to display it if
	// asked by user
	if cliFlags.ShowConfiguration {
		showConfiguration(&config)
		os.Exit(ExitStatusOK)
	}

	if config.Logging.Debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	logLevel := convertLogLevel(config.Logging.LogLevel)
	zerolog.SetGlobalLevel(logLevel)
	log.Info().
		Str("configured", config.Logging.LogLevel).
		Int("internal", int(logLevel)).
		Msg("Log level")

	if cliFlags.Verbose {
		showConfiguration(&config)
	}

	// long runs can be inspected by the gops tool
	gopsStarted := cliFlags.Gops && startGopsAgent()

	status := harness.Run(config, cliFlags)
	if gopsStarted {
		agent.Close()
	}
	os.Exit(status)
}
