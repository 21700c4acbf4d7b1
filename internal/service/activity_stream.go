package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/platform-admin-api/internal/dto"
)

const activityStreamBuffer = 16

// ActivityStream fans freshly written activity records out to connected
// dashboards. Records are mirrored over NATS so every API node sees writes
// made on its peers.
type ActivityStream interface {
	ActivityPublisher
	Subscribe() (<-chan dto.ActivityResponse, func())
	Start(ctx context.Context)
}

type activityStream struct {
	nats    *nats.Conn
	subject string
	logger  zerolog.Logger
	nodeID  string

	mu          sync.RWMutex
	subscribers map[chan dto.ActivityResponse]struct{}
}

type activityStreamEvent struct {
	Source string               `json:"source"`
	Record dto.ActivityResponse `json:"record"`
	SentAt time.Time            `json:"sent_at"`
}

// NewActivityStream constructs the stream. A nil NATS connection limits
// fan-out to subscribers on this node.
func NewActivityStream(natsConn *nats.Conn, subject string, logger zerolog.Logger) ActivityStream {
	return &activityStream{
		nats:        natsConn,
		subject:     subject,
		logger:      logger.With().Str("component", "activity_stream").Logger(),
		nodeID:      uuid.NewString(),
		subscribers: make(map[chan dto.ActivityResponse]struct{}),
	}
}

// Start begins consuming peer events from NATS until the context is cancelled.
func (s *activityStream) Start(ctx context.Context) {
	if s.nats == nil || s.subject == "" {
		return
	}

	sub, err := s.nats.Subscribe(s.subject, func(msg *nats.Msg) {
		var event activityStreamEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			s.logger.Warn().Err(err).Msg("dropping malformed activity stream event")
			return
		}
		if event.Source == s.nodeID {
			return
		}
		s.fanOut(event.Record)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("subject", s.subject).Msg("failed to subscribe to activity stream")
		return
	}

	go func() {
		<-ctx.Done()
		if err := sub.Unsubscribe(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to unsubscribe from activity stream")
		}
	}()
}

// Publish delivers the record to local subscribers and mirrors it to peers.
func (s *activityStream) Publish(record dto.ActivityResponse) {
	s.fanOut(record)

	if s.nats == nil || s.subject == "" {
		return
	}

	event := activityStreamEvent{
		Source: s.nodeID,
		Record: record,
		SentAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode activity stream event")
		return
	}

	if err := s.nats.Publish(s.subject, payload); err != nil {
		s.logger.Warn().Err(err).Str("subject", s.subject).Msg("failed to publish activity stream event")
	}
}

// Subscribe registers a dashboard listener. The returned cancel func must be
// called when the listener goes away.
func (s *activityStream) Subscribe() (<-chan dto.ActivityResponse, func()) {
	ch := make(chan dto.ActivityResponse, activityStreamBuffer)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}

	return ch, cancel
}

func (s *activityStream) fanOut(record dto.ActivityResponse) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for ch := range s.subscribers {
		select {
		case ch <- record:
		default:
			// Slow consumer; drop rather than block the write path.
		}
	}
}
