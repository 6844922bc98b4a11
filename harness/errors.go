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

import (
	"fmt"

	"github.com/RedHatInsights/crud-latency-benchmark/generator"
	"github.com/RedHatInsights/crud-latency-benchmark/types"
)

// InvalidSampleSizeError is returned when sample size is greater than pool
// size. It is the same type as returned by the generator.
type InvalidSampleSizeError = generator.InvalidSampleSizeError

// InvalidParameterError is returned when trial parameter is not positive or
// the operation family is not known
type InvalidParameterError struct {
	Name  string
	Value string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid value of parameter %s: %s", e.Name, e.Value)
}

// Special values of OperationFailedError.Trial and OperationFailedError.Row
const (
	// SeedingTrial marks failure during seeding the store with the pool
	SeedingTrial = -1
	// CleanupRow marks failure during store cleanup after trial
	CleanupRow = -1
)

// OperationFailedError is returned when single row operation fails. No
// partial results are reported in this case.
type OperationFailedError struct {
	Operation types.Operation
	Trial     int
	Row       int
	Cause     error
}

func (e *OperationFailedError) Error() string {
	switch {
	case e.Trial == SeedingTrial:
		return fmt.Sprintf("operation %v failed while seeding row %d: %v", e.Operation, e.Row, e.Cause)
	case e.Row == CleanupRow:
		return fmt.Sprintf("operation %v failed in cleanup after trial %d: %v", e.Operation, e.Trial, e.Cause)
	default:
		return fmt.Sprintf("operation %v failed in trial %d on row %d: %v", e.Operation, e.Trial, e.Row, e.Cause)
	}
}

// Unwrap returns the underlying store error
func (e *OperationFailedError) Unwrap() error {
	return e.Cause
}

// KafkaBrokerError represent an error related to Kafka initialization
type KafkaBrokerError struct{}

func (e *KafkaBrokerError) Error() string {
	return "KafkaBrokerError"
}

// StatusMetricsError is related to any error when pushing metrics
type StatusMetricsError struct{}

func (e *StatusMetricsError) Error() string {
	return "StatusMetricsError"
}
