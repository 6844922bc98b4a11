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
	"context"
	"errors"
	"fmt"

	"github.com/RedHatInsights/crud-latency-benchmark/types"
)

// memoryStorage is an in-memory implementation of Storage interface used
// to check invariants of trial runner. Records are matched on all columns,
// so a row modified by a leaked update is not found again.
type memoryStorage struct {
	rows     map[types.EmployeeID]types.Employee
	snapshot map[types.EmployeeID]types.Employee
	inTx     bool

	inserts   int
	selects   int
	updates   int
	deletes   int
	misses    int
	truncates int
	rollbacks int
	maxRows   int
	closed    bool
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{rows: make(map[types.EmployeeID]types.Employee)}
}

func (s *memoryStorage) Close() error {
	s.closed = true
	return nil
}

func (s *memoryStorage) Driver() types.DBDriver {
	return types.DBDriverGeneral
}

func (s *memoryStorage) Ping(ctx context.Context) error {
	return nil
}

func (s *memoryStorage) InitSchema(ctx context.Context) error {
	return nil
}

func (s *memoryStorage) Insert(ctx context.Context, operation types.Operation, employee *types.Employee) error {
	if _, found := s.rows[employee.ID]; found {
		return fmt.Errorf("duplicate key value %d", employee.ID)
	}
	s.rows[employee.ID] = *employee
	s.inserts++
	if len(s.rows) > s.maxRows {
		s.maxRows = len(s.rows)
	}
	return nil
}

func (s *memoryStorage) matched(employee *types.Employee) int {
	if stored, found := s.rows[employee.ID]; found && stored == *employee {
		return 1
	}
	s.misses++
	return 0
}

func (s *memoryStorage) Select(ctx context.Context, operation types.Operation, employee *types.Employee) (int, error) {
	s.selects++
	return s.matched(employee), nil
}

func (s *memoryStorage) Update(ctx context.Context, operation types.Operation, target, replacement *types.Employee) (int, error) {
	s.updates++
	affected := s.matched(target)
	if affected == 1 {
		updated := *replacement
		updated.ID = target.ID
		s.rows[target.ID] = updated
	}
	return affected, nil
}

func (s *memoryStorage) Delete(ctx context.Context, operation types.Operation, employee *types.Employee) (int, error) {
	s.deletes++
	affected := s.matched(employee)
	delete(s.rows, employee.ID)
	return affected, nil
}

func (s *memoryStorage) Truncate(ctx context.Context) error {
	s.truncates++
	s.rows = make(map[types.EmployeeID]types.Employee)
	return nil
}

func (s *memoryStorage) Count(ctx context.Context) (int, error) {
	return len(s.rows), nil
}

func (s *memoryStorage) Begin(ctx context.Context) error {
	if s.inTx {
		return errors.New(transactionAlreadyOpen)
	}
	s.inTx = true
	s.snapshot = make(map[types.EmployeeID]types.Employee, len(s.rows))
	for id, row := range s.rows {
		s.snapshot[id] = row
	}
	return nil
}

func (s *memoryStorage) Rollback() error {
	if !s.inTx {
		return errors.New(noTransactionOpen)
	}
	s.inTx = false
	s.rows = s.snapshot
	s.snapshot = nil
	s.rollbacks++
	return nil
}
