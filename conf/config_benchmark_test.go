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

package conf_test

// Benchmark for config module

import (
	"os"
	"testing"

	conf "github.com/RedHatInsights/crud-latency-benchmark/conf"
)

// Configuration-related constants
const (
	configFileEnvName = "CRUD_LATENCY_BENCHMARK_CONFIG_FILE"
	configFileName    = "../tests/benchmark"
)

// loadConfiguration function loads configuration prepared to be used by
// benchmarks
func loadConfiguration() (conf.ConfigStruct, error) {
	os.Clearenv()

	err := os.Setenv(configFileEnvName, configFileName)
	if err != nil {
		return conf.ConfigStruct{}, err
	}

	config, err := conf.LoadConfiguration(configFileEnvName, configFileName)
	if err != nil {
		return conf.ConfigStruct{}, err
	}

	return config, nil
}

func mustLoadBenchmarkConfiguration(b *testing.B) conf.ConfigStruct {
	configuration, err := loadConfiguration()
	if err != nil {
		b.Fatal(err)
	}
	return configuration
}

// BenchmarkGetBenchmarkConfiguration measures the speed of
// GetBenchmarkConfiguration function from the conf module.
func BenchmarkGetBenchmarkConfiguration(b *testing.B) {
	configuration := mustLoadBenchmarkConfiguration(b)

	for i := 0; i < b.N; i++ {
		// call benchmarked function
		m := conf.GetBenchmarkConfiguration(&configuration)

		b.StopTimer()
		if m.SampleSize > m.PoolSize {
			b.Fatal("Wrong configuration: sample_size is greater than pool_size")
		}
		b.StartTimer()
	}
}

// BenchmarkGetGeneratorConfiguration measures the speed of
// GetGeneratorConfiguration function from the conf module.
func BenchmarkGetGeneratorConfiguration(b *testing.B) {
	configuration := mustLoadBenchmarkConfiguration(b)

	for i := 0; i < b.N; i++ {
		// call benchmarked function
		m := conf.GetGeneratorConfiguration(&configuration)

		b.StopTimer()
		if m.IDMin > m.IDMax {
			b.Fatal("Wrong configuration: id_min is greater than id_max")
		}
		b.StartTimer()
	}
}
