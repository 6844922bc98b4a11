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

package harness

// This source file contains the benchmark entry point: function Run that
// measures all selected operation families one by one, prints the summary,
// exports the results table and publishes results to Kafka and to the
// Prometheus push gateway.

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/crud-latency-benchmark/conf"
	"github.com/RedHatInsights/crud-latency-benchmark/generator"
	"github.com/RedHatInsights/crud-latency-benchmark/producer"
	"github.com/RedHatInsights/crud-latency-benchmark/producer/disabled"
	"github.com/RedHatInsights/crud-latency-benchmark/producer/kafka"
	"github.com/RedHatInsights/crud-latency-benchmark/report"
	"github.com/RedHatInsights/crud-latency-benchmark/types"
	"github.com/RedHatInsights/crud-latency-benchmark/utils"
)

// Exit codes
const (
	// ExitStatusOK means that the tool finished with success
	ExitStatusOK = iota
	// ExitStatusConfiguration is an error code related to program configuration
	ExitStatusConfiguration
	// ExitStatusStorageError is returned in case of any storage-related error
	ExitStatusStorageError
	// ExitStatusBenchmarkError is returned when any operation family fails
	ExitStatusBenchmarkError
	// ExitStatusReportError is returned when results table can't be
	// exported or uploaded
	ExitStatusReportError
	// ExitStatusKafkaBrokerError is for kafka broker connection establishment
	// errors and for results that could not be published
	ExitStatusKafkaBrokerError
	// ExitStatusMetricsError is raised when prometheus metrics cannot be pushed
	ExitStatusMetricsError
)

// Messages
const (
	operationFailedMessage   = "Operation failed"
	metricsPushFailedMessage = "Couldn't push prometheus metrics"
	publishFailedMessage     = "Couldn't publish family result"
	separator                = "------------------------------------------------------------"
	runIDMessage             = "Run ID"
)

// summaryOutput is the writer the summary table is printed into
var summaryOutput io.Writer = os.Stdout

// Plan contains everything resolved from configuration and command line
// that is needed to perform one benchmark run
type Plan struct {
	RunID        string
	Operations   []types.Operation
	Parameters   TrialParameters
	Seed         int64
	InitSchema   bool
	TruncateOnly bool
	Report       conf.ReportConfiguration
}

// ResolveOperations returns operation families to be measured. Families
// given on command line (comma separated) take precedence over the
// configured ones, all 28 families are measured when none is selected.
func ResolveOperations(configured []string, override string) ([]types.Operation, error) {
	selected := configured
	if strings.TrimSpace(override) != "" {
		selected = strings.Split(override, ",")
	}

	if len(selected) == 0 {
		return types.AllOperations(), nil
	}

	operations := make([]types.Operation, 0, len(selected))
	seen := make(map[types.Operation]struct{}, len(selected))
	for _, value := range selected {
		operation, err := types.ParseOperation(value)
		if err != nil {
			return nil, err
		}
		if _, found := seen[operation]; found {
			return nil, fmt.Errorf("operation %v is selected more than once", operation)
		}
		seen[operation] = struct{}{}
		operations = append(operations, operation)
	}
	return operations, nil
}

// NewPlan resolves benchmark plan from configuration. Positive values
// given on command line override configured ones.
func NewPlan(config *conf.ConfigStruct, cliFlags types.CliFlags) (Plan, error) {
	benchmarkConfig := conf.GetBenchmarkConfiguration(config)

	operations, err := ResolveOperations(benchmarkConfig.Operations, cliFlags.Operations)
	if err != nil {
		return Plan{}, err
	}

	params := TrialParameters{
		Repetitions: overrideInt(benchmarkConfig.Repetitions, cliFlags.Repetitions),
		SampleSize:  overrideInt(benchmarkConfig.SampleSize, cliFlags.SampleSize),
		PoolSize:    overrideInt(benchmarkConfig.PoolSize, cliFlags.PoolSize),
	}
	if err := params.Validate(); err != nil {
		return Plan{}, err
	}

	seed := benchmarkConfig.Seed
	if cliFlags.Seed != 0 {
		seed = cliFlags.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	reportConfig := conf.GetReportConfiguration(config)
	if cliFlags.Output != "" {
		reportConfig.Output = cliFlags.Output
	}

	return Plan{
		RunID:        uuid.New().String(),
		Operations:   operations,
		Parameters:   params,
		Seed:         seed,
		InitSchema:   cliFlags.InitSchema || conf.GetStorageConfiguration(config).InitSchema,
		TruncateOnly: cliFlags.TruncateOnly,
		Report:       reportConfig,
	}, nil
}

func overrideInt(configured, override int) int {
	if override > 0 {
		return override
	}
	return configured
}

// Run function is entry point to the benchmark. Returned value is the exit
// status of the whole process.
func Run(config conf.ConfigStruct, cliFlags types.CliFlags) int {
	metricsConfig := conf.GetMetricsConfiguration(&config)
	registerMetrics(metricsConfig)

	plan, err := NewPlan(&config, cliFlags)
	if err != nil {
		log.Err(err).Msg("Benchmark configuration")
		return ExitStatusConfiguration
	}

	// prepare the storage
	storage, err := NewStorage(conf.GetStorageConfiguration(&config))
	if err != nil {
		StorageSetupErrors.Inc()
		log.Err(err).Msg(operationFailedMessage)
		return ExitStatusStorageError
	}

	notifier, err := setupProducer(&config)
	if err != nil {
		_ = closeStorage(storage)
		return ExitStatusKafkaBrokerError
	}

	status := runBenchmark(context.Background(), &config, plan, storage, notifier)

	log.Info().Msg(separator)
	if err := closeStorage(storage); err != nil && status == ExitStatusOK {
		status = ExitStatusStorageError
	}
	if err := closeNotifier(notifier); err != nil && status == ExitStatusOK {
		status = ExitStatusKafkaBrokerError
	}
	log.Info().Msg(separator)

	if metricsConfig.GatewayURL != "" {
		metricsConfig.GatewayURL = utils.SetHTTPPrefix(metricsConfig.GatewayURL)
		if err := pushMetrics(metricsConfig); err != nil && status == ExitStatusOK {
			status = ExitStatusMetricsError
		}
	}
	return status
}

// runBenchmark performs all steps of one benchmark run on already opened
// storage
func runBenchmark(ctx context.Context, config *conf.ConfigStruct, plan Plan, storage Storage, notifier producer.Producer) int {
	driver := storage.Driver()
	log.Info().
		Str(runIDMessage, plan.RunID).
		Stringer("Driver", driver).
		Int("Families", len(plan.Operations)).
		Int("Repetitions", plan.Parameters.Repetitions).
		Int("Sample size", plan.Parameters.SampleSize).
		Int("Pool size", plan.Parameters.PoolSize).
		Int64("Seed", plan.Seed).
		Msg("Benchmark started")

	if err := storage.Ping(ctx); err != nil {
		log.Err(err).Msg("Storage is not reachable")
		return ExitStatusStorageError
	}

	if plan.InitSchema {
		if err := storage.InitSchema(ctx); err != nil {
			log.Err(err).Msg("Schema initialization")
			return ExitStatusStorageError
		}
	}

	// leftovers from previously interrupted run would change results
	if err := storage.Truncate(ctx); err != nil {
		log.Err(err).Msg("Storage cleanup")
		return ExitStatusStorageError
	}
	if plan.TruncateOnly {
		log.Info().Msg("Storage truncated")
		return ExitStatusOK
	}

	gen := generator.New(conf.GetGeneratorConfiguration(config), plan.Seed)
	runner := NewRunner(storage, gen)

	results := make([]types.FamilyResult, 0, len(plan.Operations))
	publishFailed := false
	for _, operation := range plan.Operations {
		result, err := runner.RunFamily(ctx, operation, plan.Parameters)
		if err != nil {
			log.Err(err).Str(OperationMessage, operation.String()).Msg(operationFailedMessage)
			forceCleanup(storage)
			return ExitStatusBenchmarkError
		}
		results = append(results, result)

		log.Info().
			Str(OperationMessage, operation.String()).
			Dur("Mean", result.Mean()).
			Dur("Total", result.Sum()).
			Msg("Family finished")

		if err := publishResult(notifier, config.Kafka.Enabled, plan.RunID, driver, result); err != nil {
			log.Err(err).Str(OperationMessage, operation.String()).Msg(publishFailedMessage)
			publishFailed = true
		}
	}

	if err := report.PrintSummary(summaryOutput, results); err != nil {
		log.Err(err).Msg("Summary")
	}

	if err := exportReport(ctx, plan, results); err != nil {
		ReportExportErrors.Inc()
		log.Err(err).Msg("Results table export")
		return ExitStatusReportError
	}

	if publishFailed {
		return ExitStatusKafkaBrokerError
	}

	log.Info().Str(runIDMessage, plan.RunID).Msg("Benchmark finished")
	return ExitStatusOK
}

// forceCleanup truncates the store after failed family so the next run
// starts from an empty table
func forceCleanup(storage Storage) {
	// the context of failed family might already be done
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := storage.Truncate(ctx); err != nil {
		log.Err(err).Msg("Storage cleanup after failure")
	}
}

// exportReport stores results table into file and uploads it when upload
// is enabled
func exportReport(ctx context.Context, plan Plan, results []types.FamilyResult) error {
	path, err := report.Export(report.NewTable(results), plan.Report)
	if err != nil {
		return err
	}

	if !plan.Report.Upload.Enabled {
		return nil
	}
	uploader, err := report.NewUploader(plan.Report.Upload)
	if err != nil {
		return err
	}
	_, err = uploader.Upload(ctx, path, plan.RunID)
	return err
}

// NewResultMessage converts family result measured through given driver
// into message published to Kafka
func NewResultMessage(runID string, driver types.DBDriver, result types.FamilyResult, finishedAt time.Time) types.ResultMessage {
	seconds := make([]float64, len(result.Durations))
	for i, duration := range result.Durations {
		seconds[i] = duration.Seconds()
	}

	return types.ResultMessage{
		RunID:            runID,
		DBDriver:         driver.String(),
		DataType:         string(result.Operation.DataType),
		Verb:             string(result.Operation.Verb),
		Repetitions:      result.Repetitions,
		SampleSize:       result.SampleSize,
		PoolSize:         result.PoolSize,
		DurationsSeconds: seconds,
		MeanSeconds:      result.Mean().Seconds(),
		TotalSeconds:     result.Sum().Seconds(),
		FinishedAt:       finishedAt.UTC().Format(time.RFC3339Nano),
	}
}

func publishResult(notifier producer.Producer, enabled bool, runID string, driver types.DBDriver, result types.FamilyResult) error {
	if _, _, err := notifier.ProduceResult(NewResultMessage(runID, driver, result, time.Now())); err != nil {
		return err
	}

	if enabled {
		ResultsPublished.Inc()
	}
	return nil
}

// setupProducer function creates a Kafka producer using the provided
// configuration, or a producer that drops all messages when Kafka is
// disabled
func setupProducer(config *conf.ConfigStruct) (producer.Producer, error) {
	// broker enable/disable is very important information, let's inform
	// admins about the state
	if !conf.GetKafkaBrokerConfiguration(config).Enabled {
		log.Info().Msg("Broker config for benchmark results is disabled")
		return &disabled.Producer{}, nil
	}
	log.Info().Msg("Broker config for benchmark results is enabled")

	kafkaProducer, err := kafka.New(config)
	if err != nil {
		ProducerSetupErrors.Inc()
		log.Error().
			Str("Error", err.Error()).
			Msg("Couldn't initialize Kafka producer with the provided config.")
		return nil, &KafkaBrokerError{}
	}
	log.Info().Msg("Kafka producer ready")
	return kafkaProducer, nil
}

// registerMetrics registers metrics using the provided namespace, if any
func registerMetrics(metricsConfig conf.MetricsConfiguration) {
	if metricsConfig.Namespace != "" {
		log.Info().Str("namespace", metricsConfig.Namespace).Msg("Setting metrics namespace")
		AddMetricsWithNamespaceAndSubsystem(
			metricsConfig.Namespace,
			metricsConfig.Subsystem)
	}
}

func closeStorage(storage Storage) error {
	err := storage.Close()
	if err != nil {
		log.Err(err).Msg(operationFailedMessage)
		return err
	}
	return nil
}

func closeNotifier(notifier producer.Producer) error {
	err := notifier.Close()
	if err != nil {
		log.Err(err).Msg(operationFailedMessage)
		return err
	}
	return nil
}

func pushMetrics(metricsConf conf.MetricsConfiguration) error {
	err := PushCollectedMetrics(metricsConf)
	if err == nil {
		log.Info().Msg("Metrics pushed successfully.")
		return nil
	}

	log.Err(err).Msg(metricsPushFailedMessage)
	if metricsConf.RetryAfter == 0 || metricsConf.Retries == 0 {
		return &StatusMetricsError{}
	}
	for i := metricsConf.Retries; i > 0; i-- {
		time.Sleep(metricsConf.RetryAfter)
		log.Info().Msgf("Push metrics. Retrying (%d/%d attempts left)", i, metricsConf.Retries)
		err = PushCollectedMetrics(metricsConf)
		if err == nil {
			log.Info().Msg("Metrics pushed successfully.")
			return nil
		}
		log.Err(err).Msg(metricsPushFailedMessage)
	}
	return &StatusMetricsError{}
}
