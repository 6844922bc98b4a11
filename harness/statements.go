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

// This source file contains definitions of column subsets touched by
// operation families and the SQL statements built for them. Statements use
// PostgreSQL placeholders ($1, $2 ...) and PostGIS functions.

import (
	"fmt"
	"strings"

	"github.com/RedHatInsights/crud-latency-benchmark/types"
)

// Table and column names
const (
	employeesTable         = "employees"
	employeeIDColumn       = "employee_id"
	firstNameColumn        = "first_name"
	lastNameColumn         = "last_name"
	ageColumn              = "age"
	ratingColumn           = "rating"
	jsonContactInfoColumn  = "json_contact_info"
	bjsonContactInfoColumn = "bjson_contact_info"
	addressColumn          = "address"
)

// SQL statements
const (
	createPostGISExtension = "CREATE EXTENSION IF NOT EXISTS postgis"

	createEmployeesTable = `
		CREATE TABLE IF NOT EXISTS employees (
			employee_id        INTEGER NOT NULL PRIMARY KEY,
			first_name         VARCHAR(100),
			last_name          VARCHAR(100),
			age                INTEGER,
			rating             NUMERIC(3,2),
			json_contact_info  JSON,
			bjson_contact_info JSONB,
			address            GEOMETRY(Point)
		)
`

	truncateEmployeesTable = "TRUNCATE TABLE employees"

	countEmployees = "SELECT COUNT(*) FROM employees"
)

// column describes how one column is bound in INSERT/SET clauses and how
// it is compared in WHERE clauses. Both templates contain one %s verb
// replaced by the placeholder.
type column struct {
	name  string
	bind  string
	match string
	value func(employee *types.Employee) interface{}
}

var (
	employeeID = column{
		name:  employeeIDColumn,
		bind:  "%s",
		match: "employee_id = %s",
		value: func(e *types.Employee) interface{} { return int(e.ID) },
	}
	firstName = column{
		name:  firstNameColumn,
		bind:  "%s",
		match: "first_name = %s",
		value: func(e *types.Employee) interface{} { return e.FirstName },
	}
	lastName = column{
		name:  lastNameColumn,
		bind:  "%s",
		match: "last_name = %s",
		value: func(e *types.Employee) interface{} { return e.LastName },
	}
	age = column{
		name:  ageColumn,
		bind:  "%s",
		match: "age = %s",
		value: func(e *types.Employee) interface{} { return e.Age },
	}
	rating = column{
		name:  ratingColumn,
		bind:  "%s",
		match: "rating = %s::numeric",
		value: func(e *types.Employee) interface{} { return e.Rating },
	}
	jsonContactInfo = column{
		name:  jsonContactInfoColumn,
		bind:  "%s::json",
		match: "json_contact_info::jsonb = %s::jsonb",
		value: func(e *types.Employee) interface{} { return e.ContactText },
	}
	bjsonContactInfo = column{
		name:  bjsonContactInfoColumn,
		bind:  "%s::jsonb",
		match: "bjson_contact_info = %s::jsonb",
		value: func(e *types.Employee) interface{} { return e.ContactBinary },
	}
	address = column{
		name:  addressColumn,
		bind:  "ST_GeomFromText(%s)",
		match: "address = ST_GeomFromText(%s)",
		value: func(e *types.Employee) interface{} { return e.Location },
	}
)

// columnsForDataType returns column subset touched by operation family of
// given data type. Identifier is always the first column.
func columnsForDataType(dataType types.DataType) ([]column, error) {
	switch dataType {
	case types.DataTypeFull:
		return []column{employeeID, firstName, lastName, age, rating, jsonContactInfo, bjsonContactInfo, address}, nil
	case types.DataTypeText:
		return []column{employeeID, firstName, lastName}, nil
	case types.DataTypeInt:
		return []column{employeeID, age}, nil
	case types.DataTypeFloat:
		return []column{employeeID, rating}, nil
	case types.DataTypeJSON:
		return []column{employeeID, jsonContactInfo}, nil
	case types.DataTypeBJSON:
		return []column{employeeID, bjsonContactInfo}, nil
	case types.DataTypeGeometry:
		return []column{employeeID, address}, nil
	default:
		return nil, fmt.Errorf("unknown data type %q", dataType)
	}
}

// projectionForDataType returns column names returned by SELECT of given
// data type family
func projectionForDataType(dataType types.DataType) ([]string, error) {
	switch dataType {
	case types.DataTypeFull:
		return []string{employeeIDColumn, firstNameColumn, lastNameColumn, ageColumn, ratingColumn,
			jsonContactInfoColumn, bjsonContactInfoColumn, addressColumn}, nil
	case types.DataTypeText, types.DataTypeGeometry:
		return []string{employeeIDColumn, addressColumn}, nil
	case types.DataTypeInt:
		return []string{employeeIDColumn, ageColumn}, nil
	case types.DataTypeFloat:
		return []string{employeeIDColumn, ratingColumn}, nil
	case types.DataTypeJSON:
		return []string{employeeIDColumn, jsonContactInfoColumn}, nil
	case types.DataTypeBJSON:
		return []string{employeeIDColumn, bjsonContactInfoColumn}, nil
	default:
		return nil, fmt.Errorf("unknown data type %q", dataType)
	}
}

// placeholder returns PostgreSQL placeholder with given (1-based) index
func placeholder(index int) string {
	return fmt.Sprintf("$%d", index)
}

// whereClause returns predicate matching all given columns, placeholders
// are numbered from first
func whereClause(columns []column, first int) string {
	predicates := make([]string, len(columns))
	for i, c := range columns {
		predicates[i] = fmt.Sprintf(c.match, placeholder(first+i))
	}
	return strings.Join(predicates, " AND ")
}

// statement contains SQL text and columns its arguments are taken from
type statement struct {
	sql     string
	columns []column
}

// insertStatement builds INSERT statement for given data type
func insertStatement(dataType types.DataType) (statement, error) {
	columns, err := columnsForDataType(dataType)
	if err != nil {
		return statement{}, err
	}
	names := make([]string, len(columns))
	values := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.name
		values[i] = fmt.Sprintf(c.bind, placeholder(i+1))
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		employeesTable, strings.Join(names, ", "), strings.Join(values, ", "))
	return statement{sql: sql, columns: columns}, nil
}

// selectStatement builds SELECT statement for given data type
func selectStatement(dataType types.DataType) (statement, error) {
	columns, err := columnsForDataType(dataType)
	if err != nil {
		return statement{}, err
	}
	projection, err := projectionForDataType(dataType)
	if err != nil {
		return statement{}, err
	}
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		strings.Join(projection, ", "), employeesTable, whereClause(columns, 1))
	return statement{sql: sql, columns: columns}, nil
}

// updateStatement builds UPDATE statement for given data type. All columns
// except the identifier are set, arguments of SET clause come first.
func updateStatement(dataType types.DataType) (statement, error) {
	columns, err := columnsForDataType(dataType)
	if err != nil {
		return statement{}, err
	}
	assignments := make([]string, 0, len(columns)-1)
	for i, c := range columns[1:] {
		assignments = append(assignments,
			fmt.Sprintf("%s = "+c.bind, c.name, placeholder(i+1)))
	}
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		employeesTable, strings.Join(assignments, ", "), whereClause(columns, len(columns)))
	return statement{sql: sql, columns: columns}, nil
}

// deleteStatement builds DELETE statement for given data type
func deleteStatement(dataType types.DataType) (statement, error) {
	columns, err := columnsForDataType(dataType)
	if err != nil {
		return statement{}, err
	}
	sql := fmt.Sprintf("DELETE FROM %s WHERE %s", employeesTable, whereClause(columns, 1))
	return statement{sql: sql, columns: columns}, nil
}

// buildStatement builds statement for given operation family
func buildStatement(operation types.Operation) (statement, error) {
	switch operation.Verb {
	case types.VerbCreate:
		return insertStatement(operation.DataType)
	case types.VerbRead:
		return selectStatement(operation.DataType)
	case types.VerbUpdate:
		return updateStatement(operation.DataType)
	case types.VerbDelete:
		return deleteStatement(operation.DataType)
	default:
		return statement{}, fmt.Errorf("unknown verb %q", operation.Verb)
	}
}

// arguments returns values of statement columns taken from given record
func (s statement) arguments(employee *types.Employee) []interface{} {
	args := make([]interface{}, len(s.columns))
	for i, c := range s.columns {
		args[i] = c.value(employee)
	}
	return args
}

// updateArguments returns values of SET clause taken from replacement
// followed by values of WHERE clause taken from target
func (s statement) updateArguments(target, replacement *types.Employee) []interface{} {
	args := make([]interface{}, 0, 2*len(s.columns)-1)
	for _, c := range s.columns[1:] {
		args = append(args, c.value(replacement))
	}
	return append(args, s.arguments(target)...)
}
