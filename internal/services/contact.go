package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/mq"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
	"github.com/rs/zerolog"
)

// ContactRepository defines persistence operations for contact messages.
type ContactRepository interface {
	Create(ctx context.Context, contact types.Contact) (types.Contact, error)
	List(ctx context.Context) ([]types.Contact, error)
}

// ContactEvent is the payload published to the contact topic after a
// submission is stored. Consumed by the notification worker.
type ContactEvent struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ContactService stores contact form submissions and emits notification
// events for them.
type ContactService struct {
	repo   ContactRepository
	broker *mq.MQ
	topic  string
	logger zerolog.Logger
}

// NewContactService constructs a ContactService. broker may be nil, in
// which case submissions are stored without publishing an event.
func NewContactService(repo ContactRepository, broker *mq.MQ, topic string, logger zerolog.Logger) *ContactService {
	return &ContactService{
		repo:   repo,
		broker: broker,
		topic:  topic,
		logger: logger,
	}
}

// Submit validates and stores a contact message, then publishes a
// notification event. A publish failure is logged but does not fail the
// submission; the message is already durable in the database.
func (s *ContactService) Submit(ctx context.Context, contact types.Contact) (types.Contact, error) {
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Email = strings.TrimSpace(contact.Email)
	contact.Message = strings.TrimSpace(contact.Message)
	if contact.Name == "" || contact.Email == "" || contact.Message == "" {
		return types.Contact{}, validationErrorf("name, email and message are required")
	}

	created, err := s.repo.Create(ctx, contact)
	if err != nil {
		return types.Contact{}, err
	}

	if s.broker != nil {
		event := ContactEvent{ID: created.ID, Name: created.Name, Email: created.Email}
		data, err := json.Marshal(event)
		if err == nil {
			_, err = s.broker.Publish(ctx, s.topic, data, map[string]string{"source": "contact-form"})
		}
		if err != nil {
			s.logger.Warn().Err(err).Int("contact_id", created.ID).Msg("failed to publish contact event")
		}
	}

	return created, nil
}

func (s *ContactService) List(ctx context.Context) ([]types.Contact, error) {
	return s.repo.List(ctx)
}
