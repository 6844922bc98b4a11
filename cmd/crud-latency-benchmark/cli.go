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
	"fmt"
	"os"
	"strings"

	"github.com/google/gops/agent"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/crud-latency-benchmark/conf"
	"github.com/RedHatInsights/crud-latency-benchmark/types"
)

// Exit codes
const (
	// ExitStatusOK means that the tool finished with success
	ExitStatusOK = iota
	// ExitStatusConfiguration is an error code related to program configuration
	ExitStatusConfiguration
)

const (
	versionMessage = "CRUD latency benchmark version 1.0"
	authorsMessage = "Red Hat Inc."
)

// showVersion function displays version information.
func showVersion() {
	fmt.Println(versionMessage)
}

// showAuthors function displays information about authors.
func showAuthors() {
	fmt.Println(authorsMessage)
}

// setupCliFlags defines and parses all command line options
func setupCliFlags() types.CliFlags {
	return parseCliFlags(flag.CommandLine, os.Args[1:])
}

// parseCliFlags defines all command line options in given flag set and
// parses given arguments
func parseCliFlags(flags *flag.FlagSet, arguments []string) types.CliFlags {
	var cliFlags types.CliFlags
	flags.BoolVar(&cliFlags.ShowVersion, "show-version", false, "show version and exit")
	flags.BoolVar(&cliFlags.ShowAuthors, "show-authors", false, "show authors and exit")
	flags.BoolVar(&cliFlags.ShowConfiguration, "show-configuration", false, "show configuration and exit")
	flags.BoolVar(&cliFlags.Verbose, "verbose", false, "verbose logs")
	flags.BoolVar(&cliFlags.InitSchema, "init-schema", false, "create PostGIS extension and employees table")
	flags.BoolVar(&cliFlags.TruncateOnly, "truncate", false, "truncate employees table and exit")
	flags.BoolVar(&cliFlags.Gops, "gops", false, "start gops diagnostic agent")
	flags.StringVar(&cliFlags.Operations, "operations", "", "comma separated list of operation families, e.g. json/update,geometry/read")
	flags.IntVar(&cliFlags.Repetitions, "repetitions", 0, "number of trials per operation family")
	flags.IntVar(&cliFlags.SampleSize, "sample-size", 0, "number of rows touched by one trial")
	flags.IntVar(&cliFlags.PoolSize, "pool-size", 0, "number of generated records samples are drawn from")
	flags.StringVar(&cliFlags.Output, "output", "", "file the results table is exported into")
	flags.Int64Var(&cliFlags.Seed, "seed", 0, "seed of synthetic data generator")

	// the default flag set exits on error
	_ = flags.Parse(arguments)
	return cliFlags
}

// showConfiguration function displays actual configuration.
func showConfiguration(config *conf.ConfigStruct) {
	storageConfig := conf.GetStorageConfiguration(config)
	log.Info().
		Str("Driver", storageConfig.Driver).
		Str("DB Name", storageConfig.PGDBName).
		Str("Username", storageConfig.PGUsername). // password is omitted on purpose
		Str("Host", storageConfig.PGHost).
		Int("Port", storageConfig.PGPort).
		Bool("LogSQLQueries", storageConfig.LogSQLQueries).
		Bool("Init schema", storageConfig.InitSchema).
		Str("Parameters", storageConfig.PGParams).
		Msg("Storage configuration")

	benchmarkConfig := conf.GetBenchmarkConfiguration(config)
	log.Info().
		Int("Repetitions", benchmarkConfig.Repetitions).
		Int("Sample size", benchmarkConfig.SampleSize).
		Int("Pool size", benchmarkConfig.PoolSize).
		Strs("Operations", benchmarkConfig.Operations).
		Int64("Seed", benchmarkConfig.Seed).
		Msg("Benchmark configuration")

	generatorConfig := conf.GetGeneratorConfiguration(config)
	log.Info().
		Str("Area code", generatorConfig.AreaCode).
		Str("Email domain", generatorConfig.EmailDomain).
		Int("ID min", generatorConfig.IDMin).
		Int("ID max", generatorConfig.IDMax).
		Int("Max ID retries", generatorConfig.MaxIDRetries).
		Float64("Latitude min", generatorConfig.LatMin).
		Float64("Latitude max", generatorConfig.LatMax).
		Float64("Longitude min", generatorConfig.LonMin).
		Float64("Longitude max", generatorConfig.LonMax).
		Msg("Generator configuration")

	reportConfig := conf.GetReportConfiguration(config)
	// credentials are omitted on purpose
	log.Info().
		Str("Format", reportConfig.Format).
		Str("Output", reportConfig.Output).
		Bool("Upload enabled", reportConfig.Upload.Enabled).
		Str("Upload endpoint", reportConfig.Upload.Endpoint).
		Str("Upload bucket", reportConfig.Upload.Bucket).
		Str("Upload prefix", reportConfig.Upload.Prefix).
		Msg("Report configuration")

	brokerConfig := conf.GetKafkaBrokerConfiguration(config)
	log.Info().
		Bool("Enabled", brokerConfig.Enabled).
		Str("Address", brokerConfig.Addresses).
		Str("SecurityProtocol", brokerConfig.SecurityProtocol).
		Str("SaslMechanism", brokerConfig.SaslMechanism).
		Str("Topic", brokerConfig.Topic).
		Str("Timeout", brokerConfig.Timeout.String()).
		Msg("Broker configuration")

	loggingConfig := conf.GetLoggingConfiguration(config)
	log.Info().
		Str("Level", loggingConfig.LogLevel).
		Bool("Pretty colored debug logging", loggingConfig.Debug).
		Msg("Logging configuration")

	metricsConfig := conf.GetMetricsConfiguration(config)

	// Authentication token is omitted on purpose
	log.Info().
		Str("Namespace", metricsConfig.Namespace).
		Str("Subsystem", metricsConfig.Subsystem).
		Str("Push Gateway", metricsConfig.GatewayURL).
		Int("Retries", metricsConfig.Retries).
		Str("Retry after", metricsConfig.RetryAfter.String()).
		Msg("Metrics configuration")
}

// checkArgs function handles command line options passed to the process
func checkArgs(args *types.CliFlags) {
	switch {
	case args.ShowVersion:
		showVersion()
		os.Exit(ExitStatusOK)
	case args.ShowAuthors:
		showAuthors()
		os.Exit(ExitStatusOK)
	default:
	}

	if args.Repetitions < 0 || args.SampleSize < 0 || args.PoolSize < 0 {
		log.Error().Msg("Repetitions, sample size and pool size can not be negative")
		os.Exit(ExitStatusConfiguration)
	}
}

// startGopsAgent starts diagnostic agent and reports whether it is running
func startGopsAgent() bool {
	if err := agent.Listen(agent.Options{}); err != nil {
		log.Err(err).Msg("Unable to start gops agent")
		return false
	}
	log.Info().Msg("gops agent started")
	return true
}

func convertLogLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	}

	return zerolog.DebugLevel
}
