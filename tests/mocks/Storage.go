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

package mocks

import (
	context "context"

	types "github.com/RedHatInsights/crud-latency-benchmark/types"
	mock "github.com/stretchr/testify/mock"
)

// Storage is a mock type for the Storage type
type Storage struct {
	mock.Mock
}

// Close provides a mock function with given fields:
func (_m *Storage) Close() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Driver provides a mock function with given fields:
func (_m *Storage) Driver() types.DBDriver {
	ret := _m.Called()

	var r0 types.DBDriver
	if rf, ok := ret.Get(0).(func() types.DBDriver); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(types.DBDriver)
	}

	return r0
}

// Ping provides a mock function with given fields: ctx
func (_m *Storage) Ping(ctx context.Context) error {
	ret := _m.Called(ctx)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// InitSchema provides a mock function with given fields: ctx
func (_m *Storage) InitSchema(ctx context.Context) error {
	ret := _m.Called(ctx)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Insert provides a mock function with given fields: ctx, operation, employee
func (_m *Storage) Insert(ctx context.Context, operation types.Operation, employee *types.Employee) error {
	ret := _m.Called(ctx, operation, employee)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, types.Operation, *types.Employee) error); ok {
		r0 = rf(ctx, operation, employee)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Select provides a mock function with given fields: ctx, operation, employee
func (_m *Storage) Select(ctx context.Context, operation types.Operation, employee *types.Employee) (int, error) {
	ret := _m.Called(ctx, operation, employee)

	var r0 int
	if rf, ok := ret.Get(0).(func(context.Context, types.Operation, *types.Employee) int); ok {
		r0 = rf(ctx, operation, employee)
	} else {
		r0 = ret.Get(0).(int)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, types.Operation, *types.Employee) error); ok {
		r1 = rf(ctx, operation, employee)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Update provides a mock function with given fields: ctx, operation, target, replacement
func (_m *Storage) Update(ctx context.Context, operation types.Operation, target *types.Employee, replacement *types.Employee) (int, error) {
	ret := _m.Called(ctx, operation, target, replacement)

	var r0 int
	if rf, ok := ret.Get(0).(func(context.Context, types.Operation, *types.Employee, *types.Employee) int); ok {
		r0 = rf(ctx, operation, target, replacement)
	} else {
		r0 = ret.Get(0).(int)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, types.Operation, *types.Employee, *types.Employee) error); ok {
		r1 = rf(ctx, operation, target, replacement)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Delete provides a mock function with given fields: ctx, operation, employee
func (_m *Storage) Delete(ctx context.Context, operation types.Operation, employee *types.Employee) (int, error) {
	ret := _m.Called(ctx, operation, employee)

	var r0 int
	if rf, ok := ret.Get(0).(func(context.Context, types.Operation, *types.Employee) int); ok {
		r0 = rf(ctx, operation, employee)
	} else {
		r0 = ret.Get(0).(int)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, types.Operation, *types.Employee) error); ok {
		r1 = rf(ctx, operation, employee)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Truncate provides a mock function with given fields: ctx
func (_m *Storage) Truncate(ctx context.Context) error {
	ret := _m.Called(ctx)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Count provides a mock function with given fields: ctx
func (_m *Storage) Count(ctx context.Context) (int, error) {
	ret := _m.Called(ctx)

	var r0 int
	if rf, ok := ret.Get(0).(func(context.Context) int); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(int)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Begin provides a mock function with given fields: ctx
func (_m *Storage) Begin(ctx context.Context) error {
	ret := _m.Called(ctx)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Rollback provides a mock function with given fields:
func (_m *Storage) Rollback() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
