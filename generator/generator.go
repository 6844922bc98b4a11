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

// Package generator contains the synthetic employee row generator used to
// feed the benchmark. All randomness is owned by Generator so the same seed
// produces the same sequence of pools and samples.
package generator

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/crud-latency-benchmark/generator

import (
	"fmt"
	"math"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/crud-latency-benchmark/conf"
	"github.com/RedHatInsights/crud-latency-benchmark/types"
)

// Distribution parameters of generated values
const (
	ageMean    = 35.0
	ageStdDev  = 10.0
	ageMin     = 18
	ageMax     = 65
	ratingMean = 3.0
	ratingMin  = 0.0
	ratingMax  = 5.0
	phoneMin   = 1000
	phoneMax   = 9999
)

// Generator produces synthetic employee records. It is not safe for
// concurrent use.
type Generator struct {
	config conf.GeneratorConfiguration
	faker  *gofakeit.Faker
}

// New constructs new generator. Seed equal to zero means random seed.
func New(config conf.GeneratorConfiguration, seed int64) *Generator {
	if config.MaxIDRetries <= 0 {
		config.MaxIDRetries = conf.DefaultMaxIDRetries
	}
	return &Generator{
		config: config,
		faker:  gofakeit.New(seed),
	}
}

// idSpaceSize returns number of distinct identifiers the generator can
// produce
func (g *Generator) idSpaceSize() int {
	if g.config.IDMax < g.config.IDMin {
		return 0
	}
	return g.config.IDMax - g.config.IDMin + 1
}

// Generate returns exactly count records with pairwise distinct IDs.
func (g *Generator) Generate(count int) ([]types.Employee, error) {
	if count <= 0 {
		return nil, &InvalidCountError{Count: count}
	}
	if available := g.idSpaceSize(); available < count {
		return nil, &ExhaustedIDSpaceError{Requested: count, Generated: 0, Available: available}
	}

	used := make(map[types.EmployeeID]struct{}, count)
	employees := make([]types.Employee, 0, count)

	for len(employees) < count {
		id, err := g.freshID(used)
		if err != nil {
			err.Requested = count
			err.Generated = len(employees)
			return nil, err
		}
		used[id] = struct{}{}

		employee, encodeErr := g.employee(id)
		if encodeErr != nil {
			return nil, encodeErr
		}
		employees = append(employees, employee)
	}

	log.Debug().Int("Records", count).Msg("Synthetic pool generated")
	return employees, nil
}

// freshID draws identifiers until one not present in used is found
func (g *Generator) freshID(used map[types.EmployeeID]struct{}) (types.EmployeeID, *ExhaustedIDSpaceError) {
	for attempt := 0; attempt < g.config.MaxIDRetries; attempt++ {
		id := types.EmployeeID(g.faker.Number(g.config.IDMin, g.config.IDMax))
		if _, found := used[id]; !found {
			return id, nil
		}
	}
	return 0, &ExhaustedIDSpaceError{Available: g.idSpaceSize(), Retries: g.config.MaxIDRetries}
}

func (g *Generator) employee(id types.EmployeeID) (types.Employee, error) {
	firstName := g.faker.FirstName()
	lastName := g.faker.LastName()

	contact := types.ContactInfo{
		Phone: fmt.Sprintf("%s-555-%d", g.config.AreaCode, g.faker.Number(phoneMin, phoneMax)),
		Email: fmt.Sprintf("%s.%s@%s", strings.ToLower(firstName), strings.ToLower(lastName), g.config.EmailDomain),
	}
	contactText, err := sonic.MarshalString(contact)
	if err != nil {
		return types.Employee{}, err
	}

	location := types.Point{
		Longitude: g.faker.Float64Range(g.config.LonMin, g.config.LonMax),
		Latitude:  g.faker.Float64Range(g.config.LatMin, g.config.LatMax),
	}

	return types.Employee{
		ID:            id,
		FirstName:     firstName,
		LastName:      lastName,
		Age:           g.age(),
		Rating:        g.rating(),
		ContactText:   contactText,
		ContactBinary: contact,
		Location:      location.WKT(),
	}, nil
}

// age is drawn from normal distribution, clamped and then truncated
func (g *Generator) age() int {
	value := g.faker.Rand.NormFloat64()*ageStdDev + ageMean
	return int(clamp(value, ageMin, ageMax))
}

// rating is drawn from normal distribution, rounded to two decimals and
// then clamped
func (g *Generator) rating() float64 {
	value := g.faker.Rand.NormFloat64() + ratingMean
	return clamp(math.Round(value*100)/100, ratingMin, ratingMax)
}

// Sample returns n distinct records chosen uniformly from the pool. The
// pool itself is not modified.
func (g *Generator) Sample(pool []types.Employee, n int) ([]types.Employee, error) {
	if n <= 0 || n > len(pool) {
		return nil, &InvalidSampleSizeError{SampleSize: n, PoolSize: len(pool)}
	}

	indexes := make([]int, len(pool))
	for i := range indexes {
		indexes[i] = i
	}

	// partial Fisher-Yates shuffle, only first n positions are needed
	sample := make([]types.Employee, n)
	for i := 0; i < n; i++ {
		j := i + g.faker.Rand.Intn(len(indexes)-i)
		indexes[i], indexes[j] = indexes[j], indexes[i]
		sample[i] = pool[indexes[i]]
	}
	return sample, nil
}

func clamp(value, low, high float64) float64 {
	return math.Max(low, math.Min(high, value))
}
