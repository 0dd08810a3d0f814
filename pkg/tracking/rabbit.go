package tracking

import (
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/arremate/leilao-finder/pkg/messaging"
	"github.com/arremate/leilao-finder/pkg/types"
)

const topicPrefix = "leilao"

// RabbitTracking publishes browsing events to RabbitMQ. Send failures are
// logged and dropped; telemetry never fails a request.
type RabbitTracking struct {
	connection *amqp.Connection
	log        *slog.Logger
}

func NewRabbitTracking(url string, log *slog.Logger) (*RabbitTracking, error) {
	if log == nil {
		log = slog.Default()
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	for _, topic := range []messaging.EventTopic{messaging.SessionTopic, messaging.SearchTopic, messaging.FilterChangeTopic} {
		if err := messaging.DefineTopic(ch, topicPrefix, topic); err != nil {
			conn.Close()
			return nil, err
		}
	}
	return &RabbitTracking{connection: conn, log: log}, nil
}

func (t *RabbitTracking) Close() error {
	return t.connection.Close()
}

func (t *RabbitTracking) TrackSession(sessionId, userAgent string) {
	go t.send(messaging.SessionTopic, SessionEvent{
		SessionId: sessionId,
		UserAgent: userAgent,
		Timestamp: now(),
	})
}

func (t *RabbitTracking) TrackSearch(sessionId string, filters *types.FilterState, sort types.SortOption, page, resultCount int) {
	go t.send(messaging.SearchTopic, SearchEvent{
		SessionId:   sessionId,
		ContentType: filters.ContentType,
		Filters:     filters,
		Sort:        sort,
		Page:        page,
		ResultCount: resultCount,
		Timestamp:   now(),
	})
}

func (t *RabbitTracking) TrackFilterChange(sessionId string, facet types.FacetKey, activeFilters int) {
	go t.send(messaging.FilterChangeTopic, FilterChangeEvent{
		SessionId:     sessionId,
		Facet:         facet,
		ActiveFilters: activeFilters,
		Timestamp:     now(),
	})
}

func (t *RabbitTracking) send(topic messaging.EventTopic, event any) {
	if err := messaging.SendEvent(t.connection, topicPrefix, topic, event); err != nil {
		t.log.Warn("tracking publish failed", "topic", topic, "err", err)
	}
}
