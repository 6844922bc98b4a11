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

package conf

// This source file contains definition of data type named ConfigStruct that
// represents configuration of the CRUD latency benchmark. This source file
// also contains function named LoadConfiguration that can be used to load
// configuration from provided configuration file and/or from environment
// variables. Additionally several specific functions named
// GetStorageConfiguration, GetLoggingConfiguration, GetCloudWatchConfiguration,
// GetBenchmarkConfiguration, GetGeneratorConfiguration,
// GetReportConfiguration, GetKafkaBrokerConfiguration and
// GetMetricsConfiguration are to be used to return specific configuration
// options.

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/crud-latency-benchmark/conf

// Default name of configuration file is config.toml
// It can be changed via environment variable CRUD_LATENCY_BENCHMARK_CONFIG_FILE

// An example of configuration file that can be used in devel environment:
//
// [storage]
// db_driver = "postgres"
// pg_username = "postgres"
// pg_password = "postgres"
// pg_host = "localhost"
// pg_port = 5432
// pg_db_name = "benchmark"
// pg_params = "sslmode=disable"
// log_sql_queries = false
// init_schema = true
//
// [benchmark]
// repetitions = 100
// sample_size = 10
// pool_size = 100
// operations = []
//
// [logging]
// debug = true
// log_level = ""
//
// Environment variables that can be used to override configuration file
// settings are prefixed by CRUD_LATENCY_BENCHMARK_ followed by double underscore
// separated section and key, for example CRUD_LATENCY_BENCHMARK__STORAGE__PG_HOST.

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/RedHatInsights/insights-operator-utils/logger"
	clowder "github.com/redhatinsights/app-common-go/pkg/api/v1"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Configuration-related constants
const (
	// ConfigFileEnvVariableName is name of environment variable that
	// contains name of configuration file
	ConfigFileEnvVariableName = "CRUD_LATENCY_BENCHMARK_CONFIG_FILE"
	// DefaultConfigFileName is name of configuration file used when the
	// environment variable is not set
	DefaultConfigFileName = "config"
)

// Default values used when neither configuration file nor environment
// variable provides the value
const (
	DefaultRepetitions  = 100
	DefaultSampleSize   = 10
	DefaultPoolSize     = 100
	DefaultAreaCode     = "312"
	DefaultEmailDomain  = "company.com"
	DefaultIDMin        = 100000000
	DefaultIDMax        = 999999999
	DefaultMaxIDRetries = 1000
	DefaultLatMin       = 41.6445
	DefaultLatMax       = 42.023
	DefaultLonMin       = -87.9401
	DefaultLonMax       = -87.524
	DefaultReportFormat = "csv"
	DefaultReportOutput = "results.csv"
	DefaultDBDriver     = "postgres"
)

// ConfigStruct is a structure holding the whole benchmark configuration
type ConfigStruct struct {
	Logging      logger.LoggingConfiguration       `mapstructure:"logging" toml:"logging"`
	CloudWatch   logger.CloudWatchConfiguration    `mapstructure:"cloudwatch" toml:"cloudwatch"`
	Sentry       logger.SentryLoggingConfiguration `mapstructure:"sentry" toml:"sentry"`
	KafkaZerolog logger.KafkaZerologConfiguration  `mapstructure:"kafka_zerolog" toml:"kafka_zerolog"`
	Storage      StorageConfiguration              `mapstructure:"storage" toml:"storage"`
	Benchmark    BenchmarkConfiguration            `mapstructure:"benchmark" toml:"benchmark"`
	Generator    GeneratorConfiguration            `mapstructure:"generator" toml:"generator"`
	Report       ReportConfiguration               `mapstructure:"report" toml:"report"`
	Kafka        KafkaConfiguration                `mapstructure:"kafka_broker" toml:"kafka_broker"`
	Metrics      MetricsConfiguration              `mapstructure:"metrics" toml:"metrics"`
}

// StorageConfiguration represents configuration of postgresQSL data storage
type StorageConfiguration struct {
	Driver        string `mapstructure:"db_driver"       toml:"db_driver"`
	PGUsername    string `mapstructure:"pg_username"     toml:"pg_username"`
	PGPassword    string `mapstructure:"pg_password"     toml:"pg_password"`
	PGHost        string `mapstructure:"pg_host"         toml:"pg_host"`
	PGPort        int    `mapstructure:"pg_port"         toml:"pg_port"`
	PGDBName      string `mapstructure:"pg_db_name"      toml:"pg_db_name"`
	PGParams      string `mapstructure:"pg_params"       toml:"pg_params"`
	LogSQLQueries bool   `mapstructure:"log_sql_queries" toml:"log_sql_queries"`
	InitSchema    bool   `mapstructure:"init_schema"     toml:"init_schema"`
}

// BenchmarkConfiguration represents trial parameters shared by all
// operation families
type BenchmarkConfiguration struct {
	Repetitions int `mapstructure:"repetitions" toml:"repetitions"`
	SampleSize  int `mapstructure:"sample_size" toml:"sample_size"`
	PoolSize    int `mapstructure:"pool_size"   toml:"pool_size"`
	// Operations lists "<data type>/<verb>" families to run, empty means all
	Operations []string `mapstructure:"operations" toml:"operations"`
	// Seed for the synthetic row generator, zero means random seed
	Seed int64 `mapstructure:"seed" toml:"seed"`
}

// GeneratorConfiguration represents the shape of synthetic employee records
type GeneratorConfiguration struct {
	AreaCode     string  `mapstructure:"area_code"      toml:"area_code"`
	EmailDomain  string  `mapstructure:"email_domain"   toml:"email_domain"`
	IDMin        int     `mapstructure:"id_min"         toml:"id_min"`
	IDMax        int     `mapstructure:"id_max"         toml:"id_max"`
	MaxIDRetries int     `mapstructure:"max_id_retries" toml:"max_id_retries"`
	LatMin       float64 `mapstructure:"lat_min"        toml:"lat_min"`
	LatMax       float64 `mapstructure:"lat_max"        toml:"lat_max"`
	LonMin       float64 `mapstructure:"lon_min"        toml:"lon_min"`
	LonMax       float64 `mapstructure:"lon_max"        toml:"lon_max"`
}

// ReportConfiguration represents configuration of the exported results table
type ReportConfiguration struct {
	// Format is either "csv" or "xlsx"
	Format string              `mapstructure:"format" toml:"format"`
	Output string              `mapstructure:"output" toml:"output"`
	Upload UploadConfiguration `mapstructure:"upload" toml:"upload"`
}

// UploadConfiguration represents S3 compatible storage the report is
// uploaded into
type UploadConfiguration struct {
	Enabled   bool   `mapstructure:"enabled"    toml:"enabled"`
	Endpoint  string `mapstructure:"endpoint"   toml:"endpoint"`
	AccessKey string `mapstructure:"access_key" toml:"access_key"`
	SecretKey string `mapstructure:"secret_key" toml:"secret_key"`
	Bucket    string `mapstructure:"bucket"     toml:"bucket"`
	Prefix    string `mapstructure:"prefix"     toml:"prefix"`
	UseSSL    bool   `mapstructure:"use_ssl"    toml:"use_ssl"`
}

// KafkaConfiguration represents configuration of Kafka brokers and topics
type KafkaConfiguration struct {
	Enabled          bool          `mapstructure:"enabled"           toml:"enabled"`
	Addresses        string        `mapstructure:"addresses"         toml:"addresses"`
	SecurityProtocol string        `mapstructure:"security_protocol" toml:"security_protocol"`
	CertPath         string        `mapstructure:"cert_path"         toml:"cert_path"`
	SaslMechanism    string        `mapstructure:"sasl_mechanism"    toml:"sasl_mechanism"`
	SaslUsername     string        `mapstructure:"sasl_username"     toml:"sasl_username"`
	SaslPassword     string        `mapstructure:"sasl_password"     toml:"sasl_password"`
	Topic            string        `mapstructure:"topic"             toml:"topic"`
	Timeout          time.Duration `mapstructure:"timeout"           toml:"timeout"`
}

// MetricsConfiguration holds metrics related configuration
type MetricsConfiguration struct {
	Job              string        `mapstructure:"job_name" toml:"job_name"`
	Namespace        string        `mapstructure:"namespace" toml:"namespace"`
	Subsystem        string        `mapstructure:"subsystem" toml:"subsystem"`
	GatewayURL       string        `mapstructure:"gateway_url" toml:"gateway_url"`
	GatewayAuthToken string        `mapstructure:"gateway_auth_token" toml:"gateway_auth_token"`
	Retries          int           `mapstructure:"retries" toml:"retries"`
	RetryAfter       time.Duration `mapstructure:"retry_after" toml:"retry_after"`
}

// defaultConfiguration returns configuration prefilled by values used when
// the configuration file does not contain them
func defaultConfiguration() ConfigStruct {
	return ConfigStruct{
		Storage: StorageConfiguration{
			Driver: DefaultDBDriver,
		},
		Benchmark: BenchmarkConfiguration{
			Repetitions: DefaultRepetitions,
			SampleSize:  DefaultSampleSize,
			PoolSize:    DefaultPoolSize,
		},
		Generator: GeneratorConfiguration{
			AreaCode:     DefaultAreaCode,
			EmailDomain:  DefaultEmailDomain,
			IDMin:        DefaultIDMin,
			IDMax:        DefaultIDMax,
			MaxIDRetries: DefaultMaxIDRetries,
			LatMin:       DefaultLatMin,
			LatMax:       DefaultLatMax,
			LonMin:       DefaultLonMin,
			LonMax:       DefaultLonMax,
		},
		Report: ReportConfiguration{
			Format: DefaultReportFormat,
			Output: DefaultReportOutput,
		},
	}
}

// LoadConfiguration loads configuration from defaultConfigFile, file set in
// configFileEnvVariableName or from env
func LoadConfiguration(configFileEnvVariableName, defaultConfigFile string) (ConfigStruct, error) {
	config := defaultConfiguration()

	// env. variable holding name of configuration file
	configFile, specified := os.LookupEnv(configFileEnvVariableName)
	if specified {
		// we need to separate the directory name and filename without
		// extension
		directory, basename := filepath.Split(configFile)
		file := strings.TrimSuffix(basename, filepath.Ext(basename))
		// parse the configuration
		viper.SetConfigName(file)
		viper.AddConfigPath(directory)
	} else {
		log.Info().Str("filename", defaultConfigFile).Msg("Parsing configuration file")
		// parse the configuration
		viper.SetConfigName(defaultConfigFile)
		viper.AddConfigPath(".")
	}

	// try to read the whole configuration
	err := viper.ReadInConfig()
	if _, isNotFoundError := err.(viper.ConfigFileNotFoundError); !specified && isNotFoundError {
		// If config file is not present (which might be correct in
		// some environment) we need to read configuration from
		// environment variables The problem is that Viper is not smart
		// enough to understand the structure of config by itself, so
		// we need to read fake config file
		fakeTomlConfigWriter := new(bytes.Buffer)

		err := toml.NewEncoder(fakeTomlConfigWriter).Encode(config)
		if err != nil {
			return config, err
		}

		fakeTomlConfig := fakeTomlConfigWriter.String()

		viper.SetConfigType("toml")

		err = viper.ReadConfig(strings.NewReader(fakeTomlConfig))
		if err != nil {
			return config, err
		}
	} else if err != nil {
		// error is processed on caller side
		return config, fmt.Errorf("fatal error config file: %s", err)
	}

	// override config from env if there's variable in env

	const envPrefix = "CRUD_LATENCY_BENCHMARK_"

	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "__"))

	err = viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if clowder.IsClowderEnabled() {
		// can not use Zerolog at this moment!
		fmt.Println("Clowder is enabled")

		updateConfigFromClowder(&config)
	} else {
		// can not use Zerolog at this moment!
		fmt.Println("Clowder is disabled")
	}

	// everything's should be ok
	return config, nil
}

// updateConfigFromClowder replaces database access settings by values
// provided by Clowder
func updateConfigFromClowder(config *ConfigStruct) {
	if clowder.LoadedConfig == nil || clowder.LoadedConfig.Database == nil {
		fmt.Println("No database configuration provided by Clowder")
		return
	}

	database := clowder.LoadedConfig.Database
	config.Storage.PGDBName = database.Name
	config.Storage.PGHost = database.Hostname
	config.Storage.PGPort = database.Port
	config.Storage.PGUsername = database.Username
	config.Storage.PGPassword = database.Password
}

// GetStorageConfiguration returns storage configuration
func GetStorageConfiguration(config *ConfigStruct) StorageConfiguration {
	return config.Storage
}

// GetLoggingConfiguration returns logging configuration
func GetLoggingConfiguration(config *ConfigStruct) logger.LoggingConfiguration {
	return config.Logging
}

// GetCloudWatchConfiguration returns cloudwatch configuration
func GetCloudWatchConfiguration(config *ConfigStruct) logger.CloudWatchConfiguration {
	return config.CloudWatch
}

// GetSentryLoggingConfiguration returns the sentry log configuration
func GetSentryLoggingConfiguration(config *ConfigStruct) logger.SentryLoggingConfiguration {
	return config.Sentry
}

// GetKafkaZerologConfiguration returns the kafkazero log configuration
func GetKafkaZerologConfiguration(config *ConfigStruct) logger.KafkaZerologConfiguration {
	return config.KafkaZerolog
}

// GetBenchmarkConfiguration returns trial parameters
func GetBenchmarkConfiguration(config *ConfigStruct) BenchmarkConfiguration {
	return config.Benchmark
}

// GetGeneratorConfiguration returns synthetic data generator configuration
func GetGeneratorConfiguration(config *ConfigStruct) GeneratorConfiguration {
	return config.Generator
}

// GetReportConfiguration returns report export configuration
func GetReportConfiguration(config *ConfigStruct) ReportConfiguration {
	return config.Report
}

// GetKafkaBrokerConfiguration returns kafka broker configuration
func GetKafkaBrokerConfiguration(config *ConfigStruct) KafkaConfiguration {
	return config.Kafka
}

// GetMetricsConfiguration returns metrics configuration
func GetMetricsConfiguration(config *ConfigStruct) MetricsConfiguration {
	return config.Metrics
}
