package app

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
	"github.com/0101Programmer/orderManagementSystem/internal/messaging/kafka"
)

// initKafkaProducer инициализирует Kafka producer если brokers не пустой.
// Возвращает nil, nil если brokers пустой; при ошибке сервис продолжает работу без событий.
func initKafkaProducer(brokers string, logger *log.Entry) (*kafka.Producer, error) {
	brokerList := splitBrokers(brokers)
	if len(brokerList) == 0 {
		return nil, nil
	}

	producer, err := kafka.NewProducer(brokerList)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil, err
	}

	logger.WithField("brokers", brokerList).Info("kafka producer initialized")
	return producer, nil
}

// newEventPublisher оборачивает producer в публикатор событий заказов.
// Без producer возвращается nil, и сервис заказов использует no-op публикатор.
func newEventPublisher(producer *kafka.Producer, topic string, recorder kafka.PublishRecorder) domain.EventPublisher {
	if producer == nil {
		return nil
	}
	return kafka.NewOrderEventPublisher(producer, topic, recorder)
}

// closeKafka закрывает Kafka producer если он не nil.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}

func splitBrokers(raw string) []string {
	var brokers []string
	for _, broker := range strings.Split(raw, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}
