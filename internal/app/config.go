package app

// Допустимые драйверы хранилища заказов.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
// Структура сравнимая: cmd/order-service сверяет её с DefaultConfig в тестах.
type Config struct {
	// HTTPAddr — адрес JSON API и веб-форм.
	HTTPAddr string
	// MetricsAddr — адрес /metrics и health-проверок.
	MetricsAddr string
	// GRPCAddr — адрес gRPC health-сервера; пустая строка отключает его.
	GRPCAddr string

	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool

	// KafkaBrokers — список брокеров через запятую; пусто — события не публикуются.
	KafkaBrokers string
	KafkaTopic   string

	LogLevel string
}

// DefaultConfig возвращает конфигурацию для локального запуска в памяти.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:            ":8000",
		MetricsAddr:         ":9090",
		GRPCAddr:            ":50051",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		KafkaTopic:          "oms.order.events",
		LogLevel:            "info",
	}
}
