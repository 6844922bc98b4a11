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

package generator

import "fmt"

// ExhaustedIDSpaceError is returned when generator is not able to find
// unused identifier for the next record
type ExhaustedIDSpaceError struct {
	Requested int
	Generated int
	Available int
	Retries   int
}

func (e *ExhaustedIDSpaceError) Error() string {
	if e.Retries > 0 {
		return fmt.Sprintf("id space exhausted: no unused id found in %d attempts after %d of %d records",
			e.Retries, e.Generated, e.Requested)
	}
	return fmt.Sprintf("id space exhausted: %d records requested, only %d distinct ids available",
		e.Requested, e.Available)
}

// InvalidSampleSizeError is returned when sample can not be drawn from the pool
type InvalidSampleSizeError struct {
	SampleSize int
	PoolSize   int
}

func (e *InvalidSampleSizeError) Error() string {
	return fmt.Sprintf("invalid sample size %d for pool of %d records", e.SampleSize, e.PoolSize)
}

// InvalidCountError is returned when non-positive number of records is requested
type InvalidCountError struct {
	Count int
}

func (e *InvalidCountError) Error() string {
	return fmt.Sprintf("invalid number of records to generate: %d", e.Count)
}
