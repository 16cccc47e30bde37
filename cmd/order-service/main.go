package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/0101Programmer/orderManagementSystem/internal/app"
	"github.com/0101Programmer/orderManagementSystem/internal/version"
)

const (
	envHTTPAddr            = "OMS_HTTP_ADDR"
	envMetricsAddr         = "OMS_METRICS_ADDR"
	envGRPCAddr            = "OMS_GRPC_ADDR"
	envStorageDriver       = "OMS_STORAGE_DRIVER"
	envPostgresDSN         = "OMS_POSTGRES_DSN"
	envPostgresAutoMigrate = "OMS_POSTGRES_AUTO_MIGRATE"
	envKafkaBrokers        = "KAFKA_BROKERS"
	envKafkaTopic          = "OMS_KAFKA_TOPIC"
	envLogLevel            = "OMS_LOG_LEVEL"
)

type envLookup func(key string) (string, bool)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger(level string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}

// readConfigFromEnv формирует конфигурацию из окружения.
// Некорректные значения не валят запуск: остаётся значение по умолчанию и возвращается предупреждение.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	// Адреса переопределяются как есть: пустой OMS_GRPC_ADDR отключает gRPC.
	if v, ok := lookup(envHTTPAddr); ok && strings.TrimSpace(v) != "" {
		cfg.HTTPAddr = strings.TrimSpace(v)
	}
	if v, ok := lookup(envMetricsAddr); ok && strings.TrimSpace(v) != "" {
		cfg.MetricsAddr = strings.TrimSpace(v)
	}
	if v, ok := lookup(envGRPCAddr); ok {
		cfg.GRPCAddr = strings.TrimSpace(v)
	}

	if v, ok := lookup(envStorageDriver); ok && strings.TrimSpace(v) != "" {
		cfg.StorageDriver = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(envPostgresDSN); ok {
		cfg.PostgresDSN = strings.TrimSpace(v)
	}
	if v, ok := lookup(envPostgresAutoMigrate); ok && strings.TrimSpace(v) != "" {
		parsed, err := parseBool(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v, using default %t", envPostgresAutoMigrate, err, cfg.PostgresAutoMigrate))
		} else {
			cfg.PostgresAutoMigrate = parsed
		}
	}

	if v, ok := lookup(envKafkaBrokers); ok {
		cfg.KafkaBrokers = strings.TrimSpace(v)
	}
	if v, ok := lookup(envKafkaTopic); ok && strings.TrimSpace(v) != "" {
		cfg.KafkaTopic = strings.TrimSpace(v)
	}

	if v, ok := lookup(envLogLevel); ok && strings.TrimSpace(v) != "" {
		level := strings.ToLower(strings.TrimSpace(v))
		if _, err := log.ParseLevel(level); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v, using default %s", envLogLevel, err, cfg.LogLevel))
		} else {
			cfg.LogLevel = level
		}
	}

	return cfg, warnings
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q", raw)
	}
}

func main() {
	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	setupLogger(cfg.LogLevel)
	for _, warning := range warnings {
		log.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"version":        version.GetVersion(),
		"http_addr":      cfg.HTTPAddr,
		"metrics_addr":   cfg.MetricsAddr,
		"grpc_addr":      cfg.GRPCAddr,
		"storage_driver": cfg.StorageDriver,
		"kafka_enabled":  cfg.KafkaBrokers != "",
	}).Info("запускаем OrderService")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("OrderService остановлен")
}
