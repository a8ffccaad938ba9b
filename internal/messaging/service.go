package messaging

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"timely/internal/clock"
	"timely/internal/events"
	"timely/internal/models"
	"timely/internal/store"
	"timely/internal/threads"
	"timely/internal/timestamp"

	"github.com/rs/zerolog"
)

// ErrEmptyMessage is returned when a draft has neither subject nor body
var ErrEmptyMessage = errors.New("message needs a subject or a body")

// Draft is a message as submitted by its sender
type Draft = models.SendMessageRequest

// Service owns a client's mailbox: sending, flag changes and thread views
type Service struct {
	messages   *store.MessageStore
	indexer    *threads.Indexer
	dispatcher *events.Dispatcher
	clock      clock.Clock
	ids        clock.IDGenerator
	logger     zerolog.Logger
}

// NewService creates a messaging service. dispatcher may be nil when no projections
// are wanted.
func NewService(messages *store.MessageStore, indexer *threads.Indexer, dispatcher *events.Dispatcher, clk clock.Clock, ids clock.IDGenerator, logger zerolog.Logger) *Service {
	return &Service{
		messages:   messages,
		indexer:    indexer,
		dispatcher: dispatcher,
		clock:      clk,
		ids:        ids,
		logger:     logger,
	}
}

// Send stores a new message in the client's mailbox and publishes MessageSent.
// A reply joins the thread of its parent; a reply to an unknown message starts a
// new thread.
func (s *Service) Send(ctx context.Context, clientID string, draft Draft) (*models.Message, error) {
	subject := strings.TrimSpace(draft.Subject)
	if subject == "" && strings.TrimSpace(draft.Body) == "" {
		return nil, ErrEmptyMessage
	}

	msg := models.Message{
		ID:        s.ids.New(),
		From:      draft.From,
		To:        draft.To,
		Subject:   subject,
		Body:      draft.Body,
		Timestamp: timestamp.Format(s.clock.Now()),
		Read:      true,
	}
	msg.ThreadID = "thread-" + msg.ID

	if replyTo := strings.TrimSpace(draft.ReplyTo); replyTo != "" {
		msg.ReplyTo = &replyTo
		parent, err := s.messages.Get(ctx, clientID, replyTo)
		switch {
		case err == nil:
			msg.ThreadID = parent.ThreadID
			if msg.Subject == "" {
				msg.Subject = replySubject(parent.Subject)
			}
		case errors.Is(err, store.ErrNotFound):
			s.logger.Warn().
				Str("client_id", clientID).
				Str("reply_to", replyTo).
				Msg("Reply to unknown message, starting a new thread")
		default:
			return nil, fmt.Errorf("failed to load parent message: %w", err)
		}
	}

	if err := s.messages.Append(ctx, clientID, msg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	s.logger.Info().
		Str("client_id", clientID).
		Str("message_id", msg.ID).
		Str("thread_id", msg.ThreadID).
		Msg("Message sent")

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, events.MessageSent{ClientID: clientID, Message: msg})
	}
	return &msg, nil
}

func replySubject(subject string) string {
	if strings.HasPrefix(strings.ToLower(subject), "re:") {
		return subject
	}
	return "Re: " + subject
}

// UpdateFlags applies patch to one message. ok is false when the message does not
// exist; changed reports whether any flag actually moved.
func (s *Service) UpdateFlags(ctx context.Context, clientID, messageID string, patch models.MessageFlagPatch) (msg *models.Message, ok bool, changed bool, err error) {
	current, err := s.messages.Get(ctx, clientID, messageID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, false, nil
	}
	if err != nil {
		return nil, false, false, fmt.Errorf("failed to load message: %w", err)
	}

	n, err := s.messages.Update(ctx, clientID,
		func(m *models.Message) bool { return m.ID == messageID },
		patch.Apply)
	if err != nil {
		return nil, false, false, fmt.Errorf("failed to update message: %w", err)
	}

	updated := *current
	patch.Apply(&updated)
	return &updated, true, n > 0, nil
}

// MarkThreadRead marks every message of a thread read and returns how many changed
func (s *Service) MarkThreadRead(ctx context.Context, clientID, threadID string) (int, error) {
	read := true
	n, err := s.messages.Update(ctx, clientID,
		func(m *models.Message) bool { return m.ThreadID == threadID },
		models.MessageFlagPatch{Read: &read}.Apply)
	if err != nil {
		return 0, fmt.Errorf("failed to mark thread read: %w", err)
	}
	return n, nil
}

// PermanentDelete physically removes one message. It reports false for unknown ids.
func (s *Service) PermanentDelete(ctx context.Context, clientID, messageID string) (bool, error) {
	n, err := s.messages.Remove(ctx, clientID, func(m *models.Message) bool { return m.ID == messageID })
	if err != nil {
		return false, fmt.Errorf("failed to delete message: %w", err)
	}
	if n > 0 {
		s.logger.Info().Str("client_id", clientID).Str("message_id", messageID).Msg("Message permanently deleted")
	}
	return n > 0, nil
}

// EmptyTrash removes every deleted message and returns how many were removed
func (s *Service) EmptyTrash(ctx context.Context, clientID string) (int, error) {
	n, err := s.messages.Remove(ctx, clientID, func(m *models.Message) bool { return m.Deleted })
	if err != nil {
		return 0, fmt.Errorf("failed to empty trash: %w", err)
	}
	if n > 0 {
		s.logger.Info().Str("client_id", clientID).Int("removed", n).Msg("Trash emptied")
	}
	return n, nil
}

// Threads returns the client's threads in view, filtered by query
func (s *Service) Threads(ctx context.Context, clientID string, view threads.View, query string) ([]models.Thread, error) {
	messages, err := s.messages.List(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	return threads.Search(s.indexer.Build(messages, view), query), nil
}

// Counts returns the badge counts of every view
func (s *Service) Counts(ctx context.Context, clientID string) (models.ViewCounts, error) {
	messages, err := s.messages.List(ctx, clientID)
	if err != nil {
		return models.ViewCounts{}, fmt.Errorf("failed to load messages: %w", err)
	}
	return s.indexer.Counts(messages), nil
}

// ThreadMessages returns the messages of one thread oldest first. An unknown thread
// yields store.ErrNotFound.
func (s *Service) ThreadMessages(ctx context.Context, clientID, threadID string) ([]models.Message, error) {
	messages, err := s.messages.List(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	var member []models.Message
	for _, m := range messages {
		if m.ThreadID == threadID {
			member = append(member, m)
		}
	}
	if len(member) == 0 {
		return nil, store.ErrNotFound
	}

	slices.SortStableFunc(member, func(a, b models.Message) int {
		at, _, _ := s.indexer.Policy.Resolve(a.Timestamp)
		bt, _, _ := s.indexer.Policy.Resolve(b.Timestamp)
		return at.Compare(bt)
	})
	return member, nil
}

// Import merges messages into the client's mailbox, replacing any with the same id
func (s *Service) Import(ctx context.Context, clientID string, incoming []models.Message) (int, error) {
	messages, err := s.messages.List(ctx, clientID)
	if err != nil {
		return 0, fmt.Errorf("failed to load messages: %w", err)
	}

	for _, m := range incoming {
		if m.ID == "" {
			m.ID = s.ids.New()
		}
		if m.ThreadID == "" {
			m.ThreadID = "thread-" + m.ID
		}
		if idx := slices.IndexFunc(messages, func(existing models.Message) bool { return existing.ID == m.ID }); idx >= 0 {
			messages[idx] = m
		} else {
			messages = append(messages, m)
		}
	}

	if err := s.messages.Save(ctx, clientID, messages); err != nil {
		return 0, fmt.Errorf("failed to save messages: %w", err)
	}
	return len(incoming), nil
}
