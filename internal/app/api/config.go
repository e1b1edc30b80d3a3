package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	ordersapp "github.com/Apurer/go-gin-eshop/internal/domains/orders/application"
	kafkapublisher "github.com/Apurer/go-gin-eshop/internal/domains/shipping/adapters/messaging/kafka"
	shippingapp "github.com/Apurer/go-gin-eshop/internal/domains/shipping/application"
)

// Config carries environment-driven settings shared by the eshop binaries.
type Config struct {
	Port                string
	PostgresDSN         string
	KafkaBrokers        string
	KafkaShipmentsTopic string
	KafkaGroupID        string
	TemporalAddress     string
	TemporalNamespace   string
	TemporalDisabled    bool
	CatalogFile         string
	DueDateGrace        time.Duration
	BatchConcurrency    int
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                envDefault("PORT", "8080"),
		PostgresDSN:         strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		KafkaBrokers:        strings.TrimSpace(os.Getenv("KAFKA_BROKERS")),
		KafkaShipmentsTopic: envDefault("KAFKA_SHIPMENTS_TOPIC", kafkapublisher.DefaultTopic),
		KafkaGroupID:        envDefault("KAFKA_GROUP_ID", "eshop-shipment-reconciler"),
		TemporalAddress:     envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:   envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:    isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		CatalogFile:         strings.TrimSpace(os.Getenv("CATALOG_FILE")),
		DueDateGrace:        ordersapp.DefaultDueDateGrace,
		BatchConcurrency:    shippingapp.DefaultBatchConcurrency,
	}
	if raw := strings.TrimSpace(os.Getenv("ORDER_DUE_DATE_GRACE_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("ORDER_DUE_DATE_GRACE_SECONDS must be a positive integer")
		}
		cfg.DueDateGrace = time.Duration(seconds) * time.Second
	}
	if raw := strings.TrimSpace(os.Getenv("SHIPMENT_BATCH_CONCURRENCY")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("SHIPMENT_BATCH_CONCURRENCY must be a positive integer")
		}
		cfg.BatchConcurrency = n
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
