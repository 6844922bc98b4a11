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

// File metrics contains all metrics that needs to be exposed to Prometheus and
// indirectly to Grafana. As the benchmark is a short living process, metrics
// are pushed to the configured push gateway when all families are finished.

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/crud-latency-benchmark/conf"
)

// Metrics names
const (
	TrialDurationName       = "trial_duration_seconds"
	TrialsFinishedName      = "trials_finished"
	OperationFailuresName   = "operation_failures"
	StorageSetupErrorsName  = "storage_setup_errors"
	ProducerSetupErrorsName = "producer_setup_errors"
	ResultsPublishedName    = "results_published"
	ReportExportErrorsName  = "report_export_errors"
)

// Metrics helps
const (
	TrialDurationHelp       = "Wall clock time of one trial of operation family"
	TrialsFinishedHelp      = "The total number of finished trials"
	OperationFailuresHelp   = "The total number of operation family runs stopped by a failure"
	StorageSetupErrorsHelp  = "The total number of errors when setting up storage connection"
	ProducerSetupErrorsHelp = "The total number of errors when setting up Kafka producer"
	ResultsPublishedHelp    = "The total number of family results published to Kafka"
	ReportExportErrorsHelp  = "The total number of errors when exporting results table"
)

// Metrics labels
const (
	dataTypeLabel = "data_type"
	verbLabel     = "verb"
)

// trialDurationBuckets starts at 1ms and ends around 65s
var trialDurationBuckets = prometheus.ExponentialBuckets(0.001, 2, 17)

// PushGatewayClient is a simple wrapper over http.Client so that prometheus
// can do HTTP requests with the given authentication header
type PushGatewayClient struct {
	AuthToken string

	httpClient http.Client
}

// Do is a simple wrapper over http.Client.Do method that includes
// the authentication header configured in the PushGatewayClient instance
func (pgc *PushGatewayClient) Do(request *http.Request) (*http.Response, error) {
	if pgc.AuthToken != "" {
		log.Debug().Msg("Adding authorization header to HTTP request")
		request.Header.Set("Authorization", "Basic "+pgc.AuthToken)
	} else {
		log.Debug().Msg("No authorization token provided. Making HTTP request without credentials.")
	}
	log.Debug().Str("request", request.URL.String()).Str("method", request.Method).Msg("Pushing metrics to Prometheus push gateway")
	resp, err := pgc.httpClient.Do(request)
	if resp != nil {
		log.Debug().Int("code", resp.StatusCode).Msg("Returned status code")
	}
	return resp, err
}

// TrialDuration shows distribution of trial durations per operation family
var TrialDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    TrialDurationName,
	Help:    TrialDurationHelp,
	Buckets: trialDurationBuckets,
}, []string{dataTypeLabel, verbLabel})

// TrialsFinished shows number of finished trials per operation family
var TrialsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: TrialsFinishedName,
	Help: TrialsFinishedHelp,
}, []string{dataTypeLabel, verbLabel})

// OperationFailures shows number of family runs stopped by a failure of row
// operation, pool generation or store cleanup, counted once per run
var OperationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: OperationFailuresName,
	Help: OperationFailuresHelp,
}, []string{dataTypeLabel, verbLabel})

// StorageSetupErrors shows number of errors when setting up storage
var StorageSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: StorageSetupErrorsName,
	Help: StorageSetupErrorsHelp,
})

// ProducerSetupErrors shows number of errors when setting up Kafka producer
var ProducerSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: ProducerSetupErrorsName,
	Help: ProducerSetupErrorsHelp,
})

// ResultsPublished shows number of family results sent to the configured Kafka topic
var ResultsPublished = promauto.NewCounter(prometheus.CounterOpts{
	Name: ResultsPublishedName,
	Help: ResultsPublishedHelp,
})

// ReportExportErrors shows number of errors when exporting results table
var ReportExportErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: ReportExportErrorsName,
	Help: ReportExportErrorsHelp,
})

// AddMetricsWithNamespaceAndSubsystem register the desired metrics using a
// given namespace and subsystem
func AddMetricsWithNamespaceAndSubsystem(namespace, subsystem string) {
	// Unregister all metrics and registrer them again
	prometheus.Unregister(TrialDuration)
	prometheus.Unregister(TrialsFinished)
	prometheus.Unregister(OperationFailures)
	prometheus.Unregister(StorageSetupErrors)
	prometheus.Unregister(ProducerSetupErrors)
	prometheus.Unregister(ResultsPublished)
	prometheus.Unregister(ReportExportErrors)

	TrialDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      TrialDurationName,
		Help:      TrialDurationHelp,
		Buckets:   trialDurationBuckets,
	}, []string{dataTypeLabel, verbLabel})

	TrialsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      TrialsFinishedName,
		Help:      TrialsFinishedHelp,
	}, []string{dataTypeLabel, verbLabel})

	OperationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      OperationFailuresName,
		Help:      OperationFailuresHelp,
	}, []string{dataTypeLabel, verbLabel})

	StorageSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      StorageSetupErrorsName,
		Help:      StorageSetupErrorsHelp,
	})

	ProducerSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      ProducerSetupErrorsName,
		Help:      ProducerSetupErrorsHelp,
	})

	ResultsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      ResultsPublishedName,
		Help:      ResultsPublishedHelp,
	})

	ReportExportErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      ReportExportErrorsName,
		Help:      ReportExportErrorsHelp,
	})
}

// PushCollectedMetrics function pushes the metrics to the configured
// prometheus push gateway
func PushCollectedMetrics(metricsConf conf.MetricsConfiguration) error {
	client := PushGatewayClient{metricsConf.GatewayAuthToken, http.Client{}}

	// Creates a pusher to the gateway "$PUSHGW_URL/metrics/job/$(job_name)
	return push.New(metricsConf.GatewayURL, metricsConf.Job).
		Collector(TrialDuration).
		Collector(TrialsFinished).
		Collector(OperationFailures).
		Collector(StorageSetupErrors).
		Collector(ProducerSetupErrors).
		Collector(ResultsPublished).
		Collector(ReportExportErrors).
		Client(&client).
		Push()
}
