package main

import (
	"strings"

	"github.com/joeshaw/envdecode"
)

// config is decoded from the process environment via envdecode, in the
// style of relabs-tech/kurbisio's examples/basic service struct.
type config struct {
	DatabasePassword string `env:"POSTGRES_PASSWORD"`
	DatabaseSource   string `env:"POSTGRES_DATA_SOURCE,default=postgres://localhost/ghcrawler?sslmode=disable"`
	DatabaseSchema   string `env:"POSTGRES_SCHEMA,default=public"`
	AdminAddr        string `env:"ADMIN_ADDR,default=:8080"`
	ProcessorVersion int    `env:"PROCESSOR_VERSION,default=1"`
	CacheTTLSeconds  int    `env:"CACHE_TTL_SECONDS,default=300"`
	KafkaBrokers     string `env:"KAFKA_BROKERS"`
	KafkaTopicPrefix string `env:"KAFKA_TOPIC_PREFIX,default=ghcrawler"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := envdecode.Decode(&cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) brokers() []string {
	if c.KafkaBrokers == "" {
		return nil
	}
	return strings.Split(c.KafkaBrokers, ",")
}
