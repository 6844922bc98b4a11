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

// Package types contains data types shared by all packages of the CRUD
// latency benchmark: synthetic employee records, operation families and
// benchmark results.
package types

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/crud-latency-benchmark/types

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// EmployeeID represents the unique identifier of one synthetic employee.
type EmployeeID int

// DBDriver type for db driver enum
type DBDriver int

const (
	// DBDriverPostgres shows that db driver is lib/pq
	DBDriverPostgres DBDriver = iota
	// DBDriverPGX shows that db driver is pgx (database/sql adapter)
	DBDriverPGX
	// DBDriverGeneral general sql(used for mock now)
	DBDriverGeneral
)

// String returns the name the driver is configured by
func (d DBDriver) String() string {
	switch d {
	case DBDriverPostgres:
		return "postgres"
	case DBDriverPGX:
		return "pgx"
	case DBDriverGeneral:
		return "general"
	}
	return fmt.Sprintf("DBDriver(%d)", int(d))
}

// ContactInfo is the structured contact mapping stored in both JSON
// columns of the employees table.
type ContactInfo struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Value implements driver.Valuer so the structure can be bound directly
// to a jsonb parameter.
func (c ContactInfo) Value() (driver.Value, error) {
	encoded, err := sonic.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

// ParseContactInfo decodes contact information from its JSON text form.
func ParseContactInfo(text string) (ContactInfo, error) {
	var contact ContactInfo
	err := sonic.UnmarshalString(text, &contact)
	return contact, err
}

// Point is a two dimensional point in longitude/latitude order.
type Point struct {
	Longitude float64
	Latitude  float64
}

const wktPointPrefix = "POINT("

// WKT returns the well-known-text form of the point, POINT(lon lat).
func (p Point) WKT() string {
	return wktPointPrefix +
		strconv.FormatFloat(p.Longitude, 'f', -1, 64) + " " +
		strconv.FormatFloat(p.Latitude, 'f', -1, 64) + ")"
}

// ParsePoint decodes a point from its well-known-text form.
func ParsePoint(wkt string) (Point, error) {
	trimmed := strings.TrimSpace(wkt)
	if !strings.HasPrefix(trimmed, wktPointPrefix) || !strings.HasSuffix(trimmed, ")") {
		return Point{}, fmt.Errorf("not a WKT point: %q", wkt)
	}
	coordinates := strings.Fields(trimmed[len(wktPointPrefix) : len(trimmed)-1])
	if len(coordinates) != 2 {
		return Point{}, fmt.Errorf("WKT point needs exactly two coordinates: %q", wkt)
	}
	longitude, err := strconv.ParseFloat(coordinates[0], 64)
	if err != nil {
		return Point{}, err
	}
	latitude, err := strconv.ParseFloat(coordinates[1], 64)
	if err != nil {
		return Point{}, err
	}
	return Point{Longitude: longitude, Latitude: latitude}, nil
}

// Employee represents one synthetic record used as benchmark input.
// ContactText and ContactBinary always carry the same phone/email pair.
type Employee struct {
	ID            EmployeeID
	FirstName     string
	LastName      string
	Age           int
	Rating        float64
	ContactText   string
	ContactBinary ContactInfo
	Location      string
}

// DataType selects the column subset touched by an operation family.
type DataType string

// Data types as enum
const (
	DataTypeFull     DataType = "full"
	DataTypeText     DataType = "text"
	DataTypeInt      DataType = "int"
	DataTypeFloat    DataType = "float"
	DataTypeJSON     DataType = "json"
	DataTypeBJSON    DataType = "bjson"
	DataTypeGeometry DataType = "geometry"
)

// DataTypes lists all data types in the order they are benchmarked.
var DataTypes = []DataType{
	DataTypeFull,
	DataTypeText,
	DataTypeInt,
	DataTypeFloat,
	DataTypeJSON,
	DataTypeBJSON,
	DataTypeGeometry,
}

// Verb is one of the CRUD verbs.
type Verb string

// CRUD verbs as enum
const (
	VerbCreate Verb = "create"
	VerbRead   Verb = "read"
	VerbUpdate Verb = "update"
	VerbDelete Verb = "delete"
)

// Verbs lists all CRUD verbs in the order they are benchmarked.
var Verbs = []Verb{VerbCreate, VerbRead, VerbUpdate, VerbDelete}

// Operation is one operation family, ie. a (data type, verb) pairing.
type Operation struct {
	DataType DataType
	Verb     Verb
}

// String returns the "<data type>/<verb>" form of the operation.
func (o Operation) String() string {
	return string(o.DataType) + "/" + string(o.Verb)
}

// columnPrefixes holds result table names of data types that differ from
// the data type itself
var columnPrefixes = map[DataType]string{
	DataTypeInt: "integer",
}

// ColumnName returns the name of the result table column for the operation,
// ie. "<data type>_query_<verb>" with "integer" used for int columns.
func (o Operation) ColumnName() string {
	prefix, found := columnPrefixes[o.DataType]
	if !found {
		prefix = string(o.DataType)
	}
	return prefix + "_query_" + string(o.Verb)
}

// IsValid checks that both data type and verb are known.
func (o Operation) IsValid() bool {
	return knownDataType(o.DataType) && knownVerb(o.Verb)
}

func knownDataType(dataType DataType) bool {
	for _, known := range DataTypes {
		if known == dataType {
			return true
		}
	}
	return false
}

func knownVerb(verb Verb) bool {
	for _, known := range Verbs {
		if known == verb {
			return true
		}
	}
	return false
}

// ParseOperation parses operation family from "<data type>/<verb>" form.
func ParseOperation(value string) (Operation, error) {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 2 {
		return Operation{}, fmt.Errorf("operation %q is not in <data type>/<verb> form", value)
	}
	operation := Operation{
		DataType: DataType(strings.ToLower(parts[0])),
		Verb:     Verb(strings.ToLower(parts[1])),
	}
	if !operation.IsValid() {
		return Operation{}, fmt.Errorf("unknown operation %q", value)
	}
	return operation, nil
}

// AllOperations returns all 28 operation families, data type major.
func AllOperations() []Operation {
	operations := make([]Operation, 0, len(DataTypes)*len(Verbs))
	for _, dataType := range DataTypes {
		for _, verb := range Verbs {
			operations = append(operations, Operation{DataType: dataType, Verb: verb})
		}
	}
	return operations
}

// FamilyResult contains measured durations of all trials of one operation
// family, in trial order.
type FamilyResult struct {
	Operation   Operation
	Repetitions int
	SampleSize  int
	PoolSize    int
	Durations   []time.Duration
}

// Sum returns total time spent in all trials.
func (r FamilyResult) Sum() time.Duration {
	var sum time.Duration
	for _, d := range r.Durations {
		sum += d
	}
	return sum
}

// Mean returns average trial duration, zero when no trial was measured.
func (r FamilyResult) Mean() time.Duration {
	if len(r.Durations) == 0 {
		return 0
	}
	return r.Sum() / time.Duration(len(r.Durations))
}

// ResultMessage is the payload published for each finished operation family.
type ResultMessage struct {
	RunID            string    `json:"run_id"`
	DBDriver         string    `json:"db_driver"`
	DataType         string    `json:"data_type"`
	Verb             string    `json:"verb"`
	Repetitions      int       `json:"repetitions"`
	SampleSize       int       `json:"sample_size"`
	PoolSize         int       `json:"pool_size"`
	DurationsSeconds []float64 `json:"durations_seconds"`
	MeanSeconds      float64   `json:"mean_seconds"`
	TotalSeconds     float64   `json:"total_seconds"`
	FinishedAt       string    `json:"finished_at"`
}

// CliFlags represents structure holding all command line arguments/flags.
type CliFlags struct {
	ShowVersion       bool
	ShowAuthors       bool
	ShowConfiguration bool
	Verbose           bool
	InitSchema        bool
	TruncateOnly      bool
	Gops              bool
	Operations        string
	Repetitions       int
	SampleSize        int
	PoolSize          int
	Output            string
	Seed              int64
}
