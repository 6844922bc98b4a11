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

// This source file contains the timed trial runner. One call of RunTrials
// measures one operation family: the requested number of trials is
// performed, each trial touches a random sample of rows one by one and the
// wall clock time of the whole sample is recorded.

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/crud-latency-benchmark/generator"
	"github.com/RedHatInsights/crud-latency-benchmark/types"
)

// seedOperation is used to fill the store before read, update and delete
// trials
var seedOperation = types.Operation{DataType: types.DataTypeFull, Verb: types.VerbCreate}

// TrialParameters contains parameters of one operation family run
type TrialParameters struct {
	Repetitions int
	SampleSize  int
	PoolSize    int
}

// Validate checks that all parameters are positive and that sample can be
// drawn from the pool
func (p TrialParameters) Validate() error {
	if err := validatePositive("repetitions", p.Repetitions); err != nil {
		return err
	}
	if err := validatePositive("sample size", p.SampleSize); err != nil {
		return err
	}
	if err := validatePositive("pool size", p.PoolSize); err != nil {
		return err
	}
	if p.SampleSize > p.PoolSize {
		return &InvalidSampleSizeError{SampleSize: p.SampleSize, PoolSize: p.PoolSize}
	}
	return nil
}

func validatePositive(name string, value int) error {
	if value <= 0 {
		return &InvalidParameterError{Name: name, Value: strconv.Itoa(value)}
	}
	return nil
}

func validateOperation(operation types.Operation) error {
	if !operation.IsValid() {
		return &InvalidParameterError{Name: "operation", Value: operation.String()}
	}
	return nil
}

// poolSource returns pool that the next trial samples from
type poolSource func() ([]types.Employee, error)

// Runner performs timed trials against the storage. Runner is not safe for
// concurrent use, trials are always performed sequentially.
type Runner struct {
	storage   Storage
	generator *generator.Generator
}

// NewRunner constructs new trial runner
func NewRunner(storage Storage, gen *generator.Generator) *Runner {
	return &Runner{
		storage:   storage,
		generator: gen,
	}
}

// RunTrials measures given operation family. Durations are returned in
// trial order. Create trials draw every sample from a freshly generated
// pool, other verbs generate the pool once and seed the store with it.
func (r *Runner) RunTrials(ctx context.Context, operation types.Operation, params TrialParameters) ([]time.Duration, error) {
	if err := validateOperation(operation); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	fresh := func() ([]types.Employee, error) {
		return r.generator.Generate(params.PoolSize)
	}
	if operation.Verb == types.VerbCreate {
		return r.run(ctx, operation, params.Repetitions, params.SampleSize, fresh)
	}

	pool, err := fresh()
	if err != nil {
		return nil, err
	}
	return r.run(ctx, operation, params.Repetitions, params.SampleSize, fixedPool(pool))
}

// RunTrialsOnPool measures given operation family using caller provided
// pool for all trials
func (r *Runner) RunTrialsOnPool(ctx context.Context, operation types.Operation, repetitions, sampleSize int, pool []types.Employee) ([]time.Duration, error) {
	if err := validateOperation(operation); err != nil {
		return nil, err
	}
	params := TrialParameters{Repetitions: repetitions, SampleSize: sampleSize, PoolSize: len(pool)}
	if len(pool) == 0 {
		return nil, &InvalidSampleSizeError{SampleSize: sampleSize, PoolSize: 0}
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return r.run(ctx, operation, repetitions, sampleSize, fixedPool(pool))
}

// RunFamily measures given operation family and wraps measured durations
// together with trial parameters
func (r *Runner) RunFamily(ctx context.Context, operation types.Operation, params TrialParameters) (types.FamilyResult, error) {
	durations, err := r.RunTrials(ctx, operation, params)
	if err != nil {
		return types.FamilyResult{}, err
	}
	return types.FamilyResult{
		Operation:   operation,
		Repetitions: params.Repetitions,
		SampleSize:  params.SampleSize,
		PoolSize:    params.PoolSize,
		Durations:   durations,
	}, nil
}

func fixedPool(pool []types.Employee) poolSource {
	return func() ([]types.Employee, error) {
		return pool, nil
	}
}

func (r *Runner) run(ctx context.Context, operation types.Operation, repetitions, sampleSize int, source poolSource) ([]time.Duration, error) {
	log.Info().
		Str(OperationMessage, operation.String()).
		Int("Repetitions", repetitions).
		Int("Sample size", sampleSize).
		Msg("Running trials")

	var (
		durations []time.Duration
		err       error
	)
	if operation.Verb == types.VerbCreate {
		durations, err = r.createTrials(ctx, operation, repetitions, sampleSize, source)
	} else {
		durations, err = r.seededTrials(ctx, operation, repetitions, sampleSize, source)
	}

	if err != nil {
		OperationFailures.WithLabelValues(string(operation.DataType), string(operation.Verb)).Inc()
		log.Error().Err(err).Str(OperationMessage, operation.String()).Msg("Trials failed")
		return nil, err
	}
	return durations, nil
}

// createTrials inserts samples, the store is truncated after each trial
func (r *Runner) createTrials(ctx context.Context, operation types.Operation, repetitions, sampleSize int, source poolSource) ([]time.Duration, error) {
	durations := make([]time.Duration, 0, repetitions)

	for trial := 0; trial < repetitions; trial++ {
		sample, err := r.sample(source, sampleSize)
		if err != nil {
			return nil, err
		}

		start := time.Now()
		for row := range sample {
			if err := r.storage.Insert(ctx, operation, &sample[row]); err != nil {
				return nil, &OperationFailedError{Operation: operation, Trial: trial, Row: row, Cause: err}
			}
		}
		elapsed := time.Since(start)

		durations = append(durations, elapsed)
		r.trialFinished(operation, trial, elapsed)

		if err := r.storage.Truncate(ctx); err != nil {
			return nil, &OperationFailedError{Operation: operation, Trial: trial, Row: CleanupRow, Cause: err}
		}
	}
	return durations, nil
}

// seededTrials fills the store with the whole pool, performs read, update
// or delete trials and truncates the store at the end. Update and delete
// trials run in a transaction that is rolled back after the trial.
func (r *Runner) seededTrials(ctx context.Context, operation types.Operation, repetitions, sampleSize int, source poolSource) ([]time.Duration, error) {
	pool, err := source()
	if err != nil {
		return nil, err
	}
	if err := r.seed(ctx, pool); err != nil {
		return nil, err
	}

	// replacement values are drawn once and reused by all update trials
	var replacements []types.Employee
	if operation.Verb == types.VerbUpdate {
		replacements, err = r.generator.Sample(pool, sampleSize)
		if err != nil {
			return nil, err
		}
	}
	transactional := operation.Verb == types.VerbUpdate || operation.Verb == types.VerbDelete

	durations := make([]time.Duration, 0, repetitions)
	for trial := 0; trial < repetitions; trial++ {
		sample, err := r.generator.Sample(pool, sampleSize)
		if err != nil {
			return nil, err
		}

		if transactional {
			if err := r.storage.Begin(ctx); err != nil {
				return nil, &OperationFailedError{Operation: operation, Trial: trial, Row: 0, Cause: err}
			}
		}

		start := time.Now()
		for row := range sample {
			if err := r.perform(ctx, operation, &sample[row], replacements, row); err != nil {
				if transactional {
					r.rollbackAfterFailure()
				}
				return nil, &OperationFailedError{Operation: operation, Trial: trial, Row: row, Cause: err}
			}
		}
		elapsed := time.Since(start)

		if transactional {
			if err := r.storage.Rollback(); err != nil {
				return nil, &OperationFailedError{Operation: operation, Trial: trial, Row: CleanupRow, Cause: err}
			}
		}

		durations = append(durations, elapsed)
		r.trialFinished(operation, trial, elapsed)
	}

	if err := r.storage.Truncate(ctx); err != nil {
		return nil, &OperationFailedError{Operation: operation, Trial: repetitions - 1, Row: CleanupRow, Cause: err}
	}
	return durations, nil
}

// perform runs one row operation of read, update or delete family
func (r *Runner) perform(ctx context.Context, operation types.Operation, employee *types.Employee, replacements []types.Employee, row int) error {
	var (
		affected int
		err      error
	)
	switch operation.Verb {
	case types.VerbRead:
		affected, err = r.storage.Select(ctx, operation, employee)
	case types.VerbUpdate:
		affected, err = r.storage.Update(ctx, operation, employee, &replacements[row])
	case types.VerbDelete:
		affected, err = r.storage.Delete(ctx, operation, employee)
	}
	if err == nil && affected == 0 {
		log.Debug().
			Str(OperationMessage, operation.String()).
			Int(EmployeeIDMessage, int(employee.ID)).
			Msg("No row matched")
	}
	return err
}

// seed inserts the whole pool into the store
func (r *Runner) seed(ctx context.Context, pool []types.Employee) error {
	for row := range pool {
		if err := r.storage.Insert(ctx, seedOperation, &pool[row]); err != nil {
			return &OperationFailedError{Operation: seedOperation, Trial: SeedingTrial, Row: row, Cause: err}
		}
	}
	log.Debug().Int(RowsMessage, len(pool)).Msg("Store seeded")
	return nil
}

func (r *Runner) sample(source poolSource, sampleSize int) ([]types.Employee, error) {
	pool, err := source()
	if err != nil {
		return nil, err
	}
	return r.generator.Sample(pool, sampleSize)
}

func (r *Runner) rollbackAfterFailure() {
	if err := r.storage.Rollback(); err != nil {
		log.Error().Err(err).Msg("Rollback after failed operation")
	}
}

func (r *Runner) trialFinished(operation types.Operation, trial int, elapsed time.Duration) {
	dataType, verb := string(operation.DataType), string(operation.Verb)
	TrialDuration.WithLabelValues(dataType, verb).Observe(elapsed.Seconds())
	TrialsFinished.WithLabelValues(dataType, verb).Inc()

	log.Debug().
		Str(OperationMessage, operation.String()).
		Int("Trial", trial).
		Dur("Duration", elapsed).
		Msg("Trial finished")
}
