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

// Package kafka contains an implementation of Producer interface that
// publishes results of operation families to properly configured Kafka
// broker.
package kafka

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/crud-latency-benchmark/producer/kafka

import (
	"crypto/sha256"
	"crypto/sha512"
	"strings"

	"github.com/RedHatInsights/crud-latency-benchmark/conf"
	"github.com/RedHatInsights/crud-latency-benchmark/types"
	tlsutils "github.com/RedHatInsights/insights-operator-utils/tls"
	"github.com/Shopify/sarama"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"github.com/xdg/scram"
)

// ClientID is reported to brokers by the producer
const ClientID = "crud-latency-benchmark"

// Message header keys
const (
	DataTypeHeader = "data_type"
	VerbHeader     = "verb"
)

// Producer is an implementation of Producer interface
type Producer struct {
	Configuration conf.KafkaConfiguration
	Producer      sarama.SyncProducer
}

// New constructs new implementation of Producer interface
func New(config *conf.ConfigStruct) (*Producer, error) {
	kafkaConfig := conf.GetKafkaBrokerConfiguration(config)

	saramaConfig, err := SaramaConfigFromBrokerConfig(&kafkaConfig)
	if err != nil {
		log.Error().Err(err).Msg("Unable to create a valid Kafka configuration")
		return nil, err
	}

	producer, err := sarama.NewSyncProducer(strings.Split(kafkaConfig.Addresses, ","), saramaConfig)
	if err != nil {
		log.Error().Str("Kafka address", kafkaConfig.Addresses).Err(err).Msg("Unable to start a Kafka producer")
		return nil, err
	}

	return &Producer{
		Configuration: kafkaConfig,
		Producer:      producer,
	}, nil
}

// NewResultProducerMessage encodes result of one operation family into
// Kafka message. Messages are keyed by run ID so all results of one run
// land in the same partition in the order they were measured.
func NewResultProducerMessage(topic string, result types.ResultMessage) (*sarama.ProducerMessage, error) {
	value, err := sonic.Marshal(result)
	if err != nil {
		return nil, err
	}

	return &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(result.RunID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte(DataTypeHeader), Value: []byte(result.DataType)},
			{Key: []byte(VerbHeader), Value: []byte(result.Verb)},
		},
	}, nil
}

// ProduceResult publishes result of one operation family to the configured
// topic. It returns partition ID and offset of new message or an error
// value in case of any problem on broker side.
func (producer *Producer) ProduceResult(result types.ResultMessage) (partitionID int32, offset int64, err error) {
	// results can be switched off without reconfiguring the broker
	if !producer.Configuration.Enabled {
		return 0, -1, nil
	}

	producerMsg, err := NewResultProducerMessage(producer.Configuration.Topic, result)
	if err != nil {
		log.Error().Err(err).Msg("Unable to encode family result")
		return 0, -1, err
	}

	partitionID, offset, err = producer.Producer.SendMessage(producerMsg)
	if err != nil {
		log.Error().
			Str("Run ID", result.RunID).
			Str("Operation", result.DataType+"/"+result.Verb).
			Err(err).
			Msg("Failed to produce family result to Kafka")
		return partitionID, offset, err
	}

	log.Debug().
		Str("Run ID", result.RunID).
		Str("Operation", result.DataType+"/"+result.Verb).
		Int32("Partition", partitionID).
		Int64("Offset", offset).
		Msg("Family result sent")
	return partitionID, offset, nil
}

// Close allow the Sarama producer to be gracefully closed
func (producer *Producer) Close() error {
	log.Info().Msg("Shutting down kafka producer")
	if err := producer.Producer.Close(); err != nil {
		log.Error().Err(err).Msg("Unable to close Kafka producer")
		return err
	}

	return nil
}

// SaramaConfigFromBrokerConfig returns Sarama configuration for a
// synchronous keyed producer with TLS and SASL settings taken from broker
// configuration
func SaramaConfigFromBrokerConfig(cfg *conf.KafkaConfiguration) (*sarama.Config, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V2_8_0_0
	saramaConfig.ClientID = ClientID

	if cfg.Timeout > 0 {
		saramaConfig.Net.DialTimeout = cfg.Timeout
		saramaConfig.Net.ReadTimeout = cfg.Timeout
		saramaConfig.Net.WriteTimeout = cfg.Timeout
	}

	// results of one run are few and must not get lost or reordered
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	saramaConfig.Producer.Return.Successes = true

	if strings.Contains(cfg.SecurityProtocol, "SSL") {
		saramaConfig.Net.TLS.Enable = true
	}

	switch {
	case strings.EqualFold(cfg.SecurityProtocol, "SSL") && cfg.CertPath != "":
		tlsConfig, err := tlsutils.NewTLSConfig(cfg.CertPath)
		if err != nil {
			log.Error().Str("Certificate", cfg.CertPath).Msg("Unable to load TLS config")
			return nil, err
		}
		saramaConfig.Net.TLS.Config = tlsConfig
	case strings.HasPrefix(cfg.SecurityProtocol, "SASL_"):
		configureSASL(saramaConfig, cfg)
	}

	return saramaConfig, nil
}

// configureSASL sets SASL credentials and, for SCRAM mechanisms, the
// client performing the SCRAM exchange
func configureSASL(saramaConfig *sarama.Config, cfg *conf.KafkaConfiguration) {
	log.Info().Str("Mechanism", cfg.SaslMechanism).Msg("Configuring SASL authentication")
	saramaConfig.Net.SASL.Enable = true
	saramaConfig.Net.SASL.User = cfg.SaslUsername
	saramaConfig.Net.SASL.Password = cfg.SaslPassword
	saramaConfig.Net.SASL.Mechanism = sarama.SASLMechanism(cfg.SaslMechanism)

	var hashGenerator scram.HashGeneratorFcn
	switch {
	case strings.EqualFold(cfg.SaslMechanism, sarama.SASLTypeSCRAMSHA512):
		hashGenerator = sha512.New
	case strings.EqualFold(cfg.SaslMechanism, sarama.SASLTypeSCRAMSHA256):
		hashGenerator = sha256.New
	default:
		return
	}

	saramaConfig.Net.SASL.Handshake = true
	saramaConfig.Net.SASL.SCRAMClientGeneratorFunc = func() sarama.SCRAMClient {
		return &SCRAMClient{HashGeneratorFcn: hashGenerator}
	}
}
