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

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/crud-latency-benchmark/harness

// This source file contains an implementation of interface between Go code
// and PostgreSQL database with PostGIS extension.
//
// It is possible to configure connection to selected database by using
// StorageConfiguration structure. Two drivers are supported:
//
// postgres - lib/pq driver (default)
// pgx      - jackc/pgx driver used through its database/sql adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL database driver (pgx)
	_ "github.com/lib/pq"              // PostgreSQL database driver

	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/crud-latency-benchmark/conf"
	"github.com/RedHatInsights/crud-latency-benchmark/types"
)

// Storage represents an interface to the store that operation families are
// measured against
type Storage interface {
	Close() error
	Driver() types.DBDriver
	Ping(ctx context.Context) error
	InitSchema(ctx context.Context) error
	Insert(ctx context.Context, operation types.Operation, employee *types.Employee) error
	Select(ctx context.Context, operation types.Operation, employee *types.Employee) (int, error)
	Update(ctx context.Context, operation types.Operation, target, replacement *types.Employee) (int, error)
	Delete(ctx context.Context, operation types.Operation, employee *types.Employee) (int, error)
	Truncate(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	Begin(ctx context.Context) error
	Rollback() error
}

// executor is implemented by both *sql.DB and *sql.Tx
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DBStorage is an implementation of Storage interface that use PostgreSQL
// database. That implementation is based on the standard sql package. While
// a transaction is open every statement runs inside it.
type DBStorage struct {
	connection    *sql.DB
	dbDriverType  types.DBDriver
	tx            *sql.Tx
	statements    map[types.Operation]statement
	logSQLQueries bool
}

// error messages
const (
	unableToCloseDBRowsHandle = "Unable to close DB rows handle"
	transactionAlreadyOpen    = "transaction is already open"
	noTransactionOpen         = "no transaction is open"
)

// other messages
const (
	OperationMessage    = "Operation"
	EmployeeIDMessage   = "Employee ID"
	SQLStatementMessage = "SQL statement"
	RowsMessage         = "Rows"
)

// pingTimeout is the maximum time to wait for the database to respond
const pingTimeout = 10 * time.Second

// NewStorage function creates and initializes a new instance of Storage interface
func NewStorage(configuration conf.StorageConfiguration) (*DBStorage, error) {
	driverType, driverName, dataSource, err := initAndGetDriver(configuration)
	if err != nil {
		return nil, err
	}

	log.Info().Msgf(
		"Making connection to data storage, driver=%s host=%s database=%s",
		driverName, configuration.PGHost, configuration.PGDBName,
	)

	connection, err := sql.Open(driverName, dataSource)
	if err != nil {
		log.Error().Err(err).Msg("Can not connect to data storage")
		return nil, err
	}

	storage := NewFromConnection(connection, driverType)
	storage.logSQLQueries = configuration.LogSQLQueries
	return storage, nil
}

// NewFromConnection function creates and initializes a new instance of Storage interface from prepared connection
func NewFromConnection(connection *sql.DB, dbDriverType types.DBDriver) *DBStorage {
	return &DBStorage{
		connection:   connection,
		dbDriverType: dbDriverType,
		statements:   make(map[types.Operation]statement),
	}
}

// initAndGetDriver checks if the driver is supported and returns driver
// type, driver name, dataSource and error
func initAndGetDriver(configuration conf.StorageConfiguration) (driverType types.DBDriver, driverName, dataSource string, err error) {
	driverName = configuration.Driver

	switch driverName {
	case "postgres":
		driverType = types.DBDriverPostgres
	case "pgx":
		driverType = types.DBDriverPGX
	default:
		err = fmt.Errorf("driver %v is not supported", driverName)
		return
	}

	dataSource = fmt.Sprintf(
		"postgresql://%v:%v@%v:%v/%v?%v",
		configuration.PGUsername,
		configuration.PGPassword,
		configuration.PGHost,
		configuration.PGPort,
		configuration.PGDBName,
		configuration.PGParams,
	)
	return
}

// Close method closes the connection to database. Needs to be called at the end of application lifecycle.
func (storage *DBStorage) Close() error {
	log.Info().Msg("Closing connection to data storage")
	if storage.tx != nil {
		if err := storage.Rollback(); err != nil {
			log.Error().Err(err).Msg("Can not rollback open transaction")
		}
	}
	if storage.connection != nil {
		err := storage.connection.Close()
		if err != nil {
			log.Error().Err(err).Msg("Can not close connection to data storage")
			return err
		}
	}
	return nil
}

// Driver returns type of the driver the storage is connected through
func (storage *DBStorage) Driver() types.DBDriver {
	return storage.dbDriverType
}

// Ping method checks that the database is reachable
func (storage *DBStorage) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return storage.connection.PingContext(ctx)
}

// executor returns open transaction or the connection itself
func (storage *DBStorage) executor() executor {
	if storage.tx != nil {
		return storage.tx
	}
	return storage.connection
}

// getPrintableStatement returns SQL statement in form prepared for logging
func getPrintableStatement(sqlStatement string) string {
	s := strings.ReplaceAll(sqlStatement, "\n", " ")
	s = strings.ReplaceAll(s, "\t", "")
	return strings.Trim(s, " ")
}

// logStatement logs given statement when SQL logging is enabled
func (storage *DBStorage) logStatement(sqlStatement string) {
	if storage.logSQLQueries {
		log.Debug().Str(SQLStatementMessage, getPrintableStatement(sqlStatement)).Msg("Executing")
	}
}

// InitSchema method creates PostGIS extension and employees table when
// they do not exist yet
func (storage *DBStorage) InitSchema(ctx context.Context) error {
	for _, sqlStatement := range []string{createPostGISExtension, createEmployeesTable} {
		storage.logStatement(sqlStatement)
		if _, err := storage.connection.ExecContext(ctx, sqlStatement); err != nil {
			return err
		}
	}
	log.Info().Msg("Database schema initialized")
	return nil
}

// statement returns statement for given operation family, statements are
// built once and then reused
func (storage *DBStorage) statement(operation types.Operation, verb types.Verb) (statement, error) {
	if operation.Verb != verb {
		return statement{}, fmt.Errorf("operation %v can not be used for %s", operation, verb)
	}
	if s, found := storage.statements[operation]; found {
		return s, nil
	}
	s, err := buildStatement(operation)
	if err != nil {
		return statement{}, err
	}
	storage.statements[operation] = s
	return s, nil
}

// Insert method inserts the column subset of given record
func (storage *DBStorage) Insert(ctx context.Context, operation types.Operation, employee *types.Employee) error {
	s, err := storage.statement(operation, types.VerbCreate)
	if err != nil {
		return err
	}
	storage.logStatement(s.sql)
	_, err = storage.executor().ExecContext(ctx, s.sql, s.arguments(employee)...)
	return err
}

// Select method selects rows matching the column subset of given record,
// number of rows returned by the database is returned
func (storage *DBStorage) Select(ctx context.Context, operation types.Operation, employee *types.Employee) (int, error) {
	s, err := storage.statement(operation, types.VerbRead)
	if err != nil {
		return 0, err
	}
	storage.logStatement(s.sql)

	rows, err := storage.executor().QueryContext(ctx, s.sql, s.arguments(employee)...)
	if err != nil {
		return 0, err
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error().Err(err).Msg(unableToCloseDBRowsHandle)
		}
	}()

	count := 0
	for rows.Next() {
		count++
	}
	return count, rows.Err()
}

// Update method sets the column subset of record matching target to values
// taken from replacement. Number of updated rows is returned.
func (storage *DBStorage) Update(ctx context.Context, operation types.Operation, target, replacement *types.Employee) (int, error) {
	s, err := storage.statement(operation, types.VerbUpdate)
	if err != nil {
		return 0, err
	}
	return storage.exec(ctx, s.sql, s.updateArguments(target, replacement))
}

// Delete method deletes rows matching the column subset of given record.
// Number of deleted rows is returned.
func (storage *DBStorage) Delete(ctx context.Context, operation types.Operation, employee *types.Employee) (int, error) {
	s, err := storage.statement(operation, types.VerbDelete)
	if err != nil {
		return 0, err
	}
	return storage.exec(ctx, s.sql, s.arguments(employee))
}

// exec performs given statement and returns number of affected rows
func (storage *DBStorage) exec(ctx context.Context, sqlStatement string, args []interface{}) (int, error) {
	storage.logStatement(sqlStatement)

	result, err := storage.executor().ExecContext(ctx, sqlStatement, args...)
	if err != nil {
		return 0, err
	}

	// read number of affected rows
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

// Truncate method deletes all rows from employees table
func (storage *DBStorage) Truncate(ctx context.Context) error {
	storage.logStatement(truncateEmployeesTable)
	_, err := storage.executor().ExecContext(ctx, truncateEmployeesTable)
	return err
}

// Count method returns number of rows in employees table
func (storage *DBStorage) Count(ctx context.Context) (int, error) {
	var count int
	storage.logStatement(countEmployees)
	err := storage.executor().QueryRowContext(ctx, countEmployees).Scan(&count)
	return count, err
}

// Begin method opens new transaction, all following statements run inside
// it until Rollback is called
func (storage *DBStorage) Begin(ctx context.Context) error {
	if storage.tx != nil {
		return errors.New(transactionAlreadyOpen)
	}
	tx, err := storage.connection.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	storage.tx = tx
	return nil
}

// Rollback method undoes all changes made in the open transaction
func (storage *DBStorage) Rollback() error {
	if storage.tx == nil {
		return errors.New(noTransactionOpen)
	}
	tx := storage.tx
	storage.tx = nil
	return tx.Rollback()
}

// Connection returns database connection used by the storage
func (storage *DBStorage) Connection() *sql.DB {
	return storage.connection
}
