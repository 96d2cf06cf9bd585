package notify

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/schoolhub/library-service/pkg/breaker"
	"github.com/schoolhub/library-service/pkg/kafka"
)

// Notifier announces committed mutations on the circulation topic.
// Delivery is best-effort: a broker outage must never fail the mutation
// that triggered the event, so failures are logged and swallowed, and a
// circuit breaker keeps a dead broker from stalling every request.
type Notifier interface {
	Publish(ev kafka.ChangeEvent)
}

type notifier struct {
	producer sarama.SyncProducer
	cb       breaker.Breaker
	log      *zap.Logger
}

func New(producer sarama.SyncProducer, log *zap.Logger) Notifier {
	return &notifier{
		producer: producer,
		cb:       breaker.New(20, 30*time.Second, 0.5, 5),
		log:      log.Named("notify"),
	}
}

func (n *notifier) Publish(ev kafka.ChangeEvent) {
	err := n.cb.Call(func() error {
		data, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		msg := &sarama.ProducerMessage{Topic: kafka.CirculationTopic, Value: sarama.StringEncoder(data)}
		_, _, err = n.producer.SendMessage(msg)
		return err
	})
	if err != nil {
		n.log.Warn("publish change event",
			zap.String("eventType", ev.EventType),
			zap.Error(err))
	}
}

type noop struct{}

func (noop) Publish(kafka.ChangeEvent) {}

// Noop is used when no broker is configured.
func Noop() Notifier { return noop{} }
