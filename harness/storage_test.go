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

package harness_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/RedHatInsights/insights-operator-utils/tests/helpers"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/RedHatInsights/crud-latency-benchmark/conf"
	"github.com/RedHatInsights/crud-latency-benchmark/harness"
	"github.com/RedHatInsights/crud-latency-benchmark/types"
)

var (
	fullCreate     = types.Operation{DataType: types.DataTypeFull, Verb: types.VerbCreate}
	textRead       = types.Operation{DataType: types.DataTypeText, Verb: types.VerbRead}
	intUpdate      = types.Operation{DataType: types.DataTypeInt, Verb: types.VerbUpdate}
	bjsonDelete    = types.Operation{DataType: types.DataTypeBJSON, Verb: types.VerbDelete}
	geometryCreate = types.Operation{DataType: types.DataTypeGeometry, Verb: types.VerbCreate}
)

var testEmployee = types.Employee{
	ID:            123456789,
	FirstName:     "Ada",
	LastName:      "Lovelace",
	Age:           36,
	Rating:        4.25,
	ContactText:   `{"phone":"312-555-1234","email":"ada.lovelace@company.com"}`,
	ContactBinary: types.ContactInfo{Phone: "312-555-1234", Email: "ada.lovelace@company.com"},
	Location:      "POINT(-87.6 41.8)",
}

var errDatabase = errors.New("database is not available")

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

// mustCreateMockConnection function tries to create a new mock connection and
// checks if the operation was finished without problems.
func mustCreateMockConnection(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	// try to initialize new mock connection
	connection, mock, err := sqlmock.New()

	// check the status
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}

	return connection, mock
}

// checkConnectionClose function perform mocked DB closing operation and checks
// if the connection is properly closed from unit tests.
func checkConnectionClose(t *testing.T, connection *sql.DB) {
	// connection to mocked DB needs to be closed properly
	err := connection.Close()

	// check the error status
	if err != nil {
		t.Fatalf("error during closing connection: %v", err)
	}
}

// checkAllExpectations function checks if all database-related operations have
// been really met.
func checkAllExpectations(t *testing.T, mock sqlmock.Sqlmock) {
	// check if all expectations were met
	err := mock.ExpectationsWereMet()

	// check the error status
	if err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestNewStorageUnsupportedDriver checks that unknown driver is refused
func TestNewStorageUnsupportedDriver(t *testing.T) {
	_, err := harness.NewStorage(conf.StorageConfiguration{
		Driver: "sqlite3",
	})
	assert.EqualError(t, err, "driver sqlite3 is not supported")
}

// TestNewStorageSupportedDrivers checks that storage can be constructed
// for both supported drivers, connection is not opened until first use
func TestNewStorageSupportedDrivers(t *testing.T) {
	for _, driver := range []string{"postgres", "pgx"} {
		t.Run(driver, func(t *testing.T) {
			storage, err := harness.NewStorage(conf.StorageConfiguration{
				Driver:     driver,
				PGUsername: "user",
				PGPassword: "password",
				PGHost:     "localhost",
				PGPort:     5432,
				PGDBName:   "employees",
				PGParams:   "sslmode=disable",
			})
			helpers.FailOnError(t, err)
			assert.NotNil(t, storage.Connection())
			helpers.FailOnError(t, storage.Close())
		})
	}
}

// TestStorageDriver checks that storage reports driver it was created for
func TestStorageDriver(t *testing.T) {
	storage, err := harness.NewStorage(conf.StorageConfiguration{
		Driver:   "pgx",
		PGHost:   "localhost",
		PGPort:   5432,
		PGDBName: "employees",
	})
	helpers.FailOnError(t, err)
	assert.Equal(t, types.DBDriverPGX, storage.Driver())
	helpers.FailOnError(t, storage.Close())

	connection, mock := mustCreateMockConnection(t)
	mock.ExpectClose()

	storage = harness.NewFromConnection(connection, types.DBDriverGeneral)
	assert.Equal(t, types.DBDriverGeneral, storage.Driver())

	checkConnectionClose(t, connection)
	checkAllExpectations(t, mock)
}

// TestInitSchema checks that extension and table are created
func TestInitSchema(t *testing.T) {
	connection, mock := mustCreateMockConnection(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE EXTENSION IF NOT EXISTS postgis")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS employees")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectClose()

	storage := harness.NewFromConnection(connection, types.DBDriverGeneral)
	err := storage.InitSchema(context.Background())
	helpers.FailOnError(t, err)

	helpers.FailOnError(t, storage.Close())
	checkAllExpectations(t, mock)
}

// TestInitSchemaOnError checks that extension error stops initialization
func TestInitSchemaOnError(t *testing.T) {
	connection, mock := mustCreateMockConnection(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE EXTENSION IF NOT EXISTS postgis")).
		WillReturnError(errDatabase)

	mock.ExpectClose()

	storage := harness.NewFromConnection(connection, types.DBDriverGeneral)
	err := storage.InitSchema(context.Background())
	assert.ErrorIs(t, err, errDatabase)

	checkConnectionClose(t, connection)
	checkAllExpectations(t, mock)
}

// TestInsertFullRecord checks INSERT statement and all its arguments
func TestInsertFullRecord(t *testing.T) {
	connection, mock := mustCreateMockConnection(t)

	expectedStatement := "INSERT INTO employees (employee_id, first_name, last_name, age, rating, json_contact_info, bjson_contact_info, address) " +
		"VALUES ($1, $2, $3, $4, $5, $6::json, $7::jsonb, ST_GeomFromText($8))"

	mock.ExpectExec(regexp.QuoteMeta(expectedStatement)).
		WithArgs(123456789, "Ada", "Lovelace", 36, 4.25,
			testEmployee.ContactText,
			`{"phone":"312-555-1234","email":"ada.lovelace@company.com"}`,
			"POINT(-87.6 41.8)").
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectClose()

	storage := harness.NewFromConnection(connection, types.DBDriverGeneral)
	employee := testEmployee
	err := storage.Insert(context.Background(), fullCreate, &employee)
	helpers.FailOnError(t, err)

	checkConnectionClose(t, connection)
	checkAllExpectations(t, mock)
}

// TestInsertColumnSubset checks that only column subset of the family is
// inserted
func TestInsertColumnSubset(t *testing.T) {
	connection, mock := mustCreateMockConnection(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO employees (employee_id, address) VALUES ($1, ST_GeomFromText($2))")).
		WithArgs(123456789, "POINT(-87.6 41.8)").
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectClose()

	storage := harness.NewFromConnection(connection, types.DBDriverGeneral)
	employee := testEmployee
	err := storage.Insert(context.Background(), geometryCreate, &employee)
	helpers.FailOnError(t, err)

	checkConnectionClose(t, connection)
	checkAllExpectations(t, mock)
}

// TestInsertOnError checks that database error is returned
func TestInsertOnError(t *testing.T) {
	connection, mock := mustCreateMockConnection(t)

	mock.ExpectExec("INSERT INTO employees").WillReturnError(errDatabase)

	mock.ExpectClose()

	storage := harness.NewFromConnection(connection, types.DBDriverGeneral)
	employee := testEmployee
	err := storage.Insert(context.Background(), fullCreate, &employee)
	assert.ErrorIs(t, err, errDatabase)

	checkConnectionClose(t, connection)
	checkAllExpectations(t, mock)
}

// TestInsertWrongVerb checks that operation family needs to match the
// storage method
func TestInsertWrongVerb(t *testing.T) {
	connection, mock := mustCreateMockConnection(t)

	mock.ExpectClose()

	storage := harness.NewFromConnection(connection, types.DBDriverGeneral)
	employee := testEmployee
	err := storage.Insert(context.Background(), textRead, &employee)
	assert.Error(t, err)

	checkConnectionClose(t, connection)
	checkAllExpectations(t, mock)
}

// TestSelectCountsRows checks that number of returned rows is reported
func TestSelectCountsRows(t *testing.T) {
	connection, mock := mustCreateMockConnection(t)

	rows := sqlmock.NewRows([]string{"employee_id", "address"}).
		AddRow(123456789, "0101000000")

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT employee_id, address FROM employees WHERE employee_id = $1 AND first_name = $2 AND last_name = $3")).
		WithArgs(123456789, "Ada", "Lovelace").
		WillReturnRows(rows)

	mock.ExpectClose()

	storage := harness.NewFromConnection(connection, types.DBDriverGeneral)
	employee := testEmployee
	count, err := storage.Select(context.Background(), textRead, &employee)
	helpers.FailOnError(t, err)
	assert.Equal(t, 1, count)

	checkConnectionClose(t, connection)
	checkAllExpectations(t, mock)
}

// TestSelectNoRows checks that missing record is not an error
func TestSelectNoRows(t *testing.T) {
	connection, mock := mustCreateMockConnection(t)

	mock.ExpectQuery("SELECT employee_id, address FROM employees").
		WillReturnRows(sqlmock.NewRows([]string{"employee_id", "address"}))

	mock.ExpectClose()

	storage := harness.NewFromConnection(connection, types.DBDriverGeneral)
	employee := testEmployee
	count, err := storage.Select(context.Background(), textRead, &employee)
	helpers.FailOnError(t, err)
	assert.Equal(t, 0, count)

	checkConnectionClose(t, connection)
	checkAllExpectations(t, mock)
}

// TestSelectOnError checks that query error is returned
func TestSelectOnError(t *testing.T) {
	connection, mock := mustCreateMockConnection(t)

	mock.ExpectQuery("SELECT employee_id, address FROM employees").
		WillReturnError(errDatabase)

	mock.ExpectClose()

	storage := harness.NewFromConnection(connection, types.DBDriverGeneral)
	employee := testEmployee
	_, err := storage.Select(context.Background(), textRead, &employee)
	assert.ErrorIs(t, err, errDatabase)

	checkConnectionClose(t, connection)
	checkAllExpectations(t, mock)
}

// TestUpdate checks UPDATE statement, its arguments and number of updated
// rows
func TestUpdate(t *testing.T) {
	connection, mock := mustCreateMockConnection(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE employees SET age = $1 WHERE employee_id = $2 AND age = $3")).
		WithArgs(52, 123456789, 36).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectClose()

	storage := harness.NewFromConnection(connection, types.DBDriverGeneral)
	target := testEmployee
	replacement := testEmployee
	replacement.Age = 52
	affected, err := storage.Update(context.Background(), intUpdate, &target, &replacement)
	helpers.FailOnError(t, err)
	assert.Equal(t, 1, affected)

	checkConnectionClose(t, connection)
	checkAllExpectations(t, mock)
}

// TestDelete checks DELETE statement and number of deleted rows
func TestDelete(t *testing.T) {
	connection, mock := mustCreateMockConnection(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM employees WHERE employee_id = $1 AND bjson_contact_info = $2::jsonb")).
		WithArgs(123456789, `{"phone":"312-555-1234","email":"ada.lovelace@company.com"}`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectClose()

	storage := harness.NewFromConnection(connection, types.DBDriverGeneral)
	employee := testEmployee
	affected, err := storage.Delete(context.Background(), bjsonDelete, &employee)
	helpers.FailOnError(t, err)
	assert.Equal(t, 0, affected)

	checkConnectionClose(t, connection)
	checkAllExpectations(t, mock)
}

// TestTruncateAndCount checks table maintenance statements
func TestTruncateAndCount(t *testing.T) {
	connection, mock := mustCreateMockConnection(t)

	mock.ExpectExec(regexp.QuoteMeta("TRUNCATE TABLE employees")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM employees")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectClose()

	storage := harness.NewFromConnection(connection, types.DBDriverGeneral)
	helpers.FailOnError(t, storage.Truncate(context.Background()))

	count, err := storage.Count(context.Background())
	helpers.FailOnError(t, err)
	assert.Equal(t, 0, count)

	checkConnectionClose(t, connection)
	checkAllExpectations(t, mock)
}

// TestTransaction checks that statements run inside open transaction and
// that the transaction is rolled back
func TestTransaction(t *testing.T) {
	connection, mock := mustCreateMockConnection(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM employees").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	mock.ExpectClose()

	storage := harness.NewFromConnection(connection, types.DBDriverGeneral)
	helpers.FailOnError(t, storage.Begin(context.Background()))

	// only one transaction can be open
	assert.EqualError(t, storage.Begin(context.Background()), "transaction is already open")

	employee := testEmployee
	affected, err := storage.Delete(context.Background(), bjsonDelete, &employee)
	helpers.FailOnError(t, err)
	assert.Equal(t, 1, affected)

	helpers.FailOnError(t, storage.Rollback())
	assert.EqualError(t, storage.Rollback(), "no transaction is open")

	checkConnectionClose(t, connection)
	checkAllExpectations(t, mock)
}

// TestCloseRollsBackOpenTransaction checks that storage can be closed
// while transaction is still open
func TestCloseRollsBackOpenTransaction(t *testing.T) {
	connection, mock := mustCreateMockConnection(t)

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectClose()

	storage := harness.NewFromConnection(connection, types.DBDriverGeneral)
	helpers.FailOnError(t, storage.Begin(context.Background()))
	helpers.FailOnError(t, storage.Close())

	checkAllExpectations(t, mock)
}

// TestCloseOnError checks that error during closing connection is reported
func TestCloseOnError(t *testing.T) {
	connection, mock := mustCreateMockConnection(t)

	mock.ExpectClose().WillReturnError(errDatabase)

	storage := harness.NewFromConnection(connection, types.DBDriverGeneral)
	assert.ErrorIs(t, storage.Close(), errDatabase)

	checkAllExpectations(t, mock)
}

// TestPing checks that reachable database is reported
func TestPing(t *testing.T) {
	connection, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	helpers.FailOnError(t, err)

	mock.ExpectPing()

	mock.ExpectClose()

	storage := harness.NewFromConnection(connection, types.DBDriverGeneral)
	helpers.FailOnError(t, storage.Ping(context.Background()))

	checkConnectionClose(t, connection)
	checkAllExpectations(t, mock)
}
