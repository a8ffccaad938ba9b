package messaging

import (
	"context"
	"fmt"

	"timely/internal/events"
	"timely/internal/models"
	"timely/internal/store"
)

// Notifier delivers admin notifications
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

// Subscriber names
const (
	SubscriberAdminInbox      = "admin_inbox"
	SubscriberConsultantInbox = "consultant_inbox"
	SubscriberGlobalLog       = "global_log"
	SubscriberNotification    = "admin_notification"
)

// RegisterProjections subscribes the inbox projections to d. notifier may be nil.
func RegisterProjections(d *events.Dispatcher, inboxes *store.InboxStore, notifier Notifier) {
	d.Subscribe(SubscriberAdminInbox, func(ctx context.Context, evt events.MessageSent) error {
		return inboxes.Append(ctx, store.KeyAdminMessages, unread(evt))
	})

	d.Subscribe(SubscriberConsultantInbox, func(ctx context.Context, evt events.MessageSent) error {
		email := consultantEmail(evt.Message)
		if email == "" {
			return nil
		}
		return inboxes.Append(ctx, store.ConsultantMessagesKey(email), unread(evt))
	})

	d.Subscribe(SubscriberGlobalLog, func(ctx context.Context, evt events.MessageSent) error {
		return inboxes.Append(ctx, store.KeyGlobalMessages, unread(evt))
	})

	if notifier != nil {
		d.Subscribe(SubscriberNotification, func(ctx context.Context, evt events.MessageSent) error {
			if evt.Message.From.Role != models.RoleClient {
				return nil
			}
			return notifier.Notify(ctx, models.Notification{
				Type:      models.NotificationNewMessage,
				Title:     "New message",
				Message:   fmt.Sprintf("%s: %s", senderName(evt.Message.From), evt.Message.Subject),
				ClientID:  evt.ClientID,
				MessageID: evt.Message.ID,
				CreatedAt: evt.Message.Timestamp,
			})
		})
	}
}

// unread is the recipient-side copy of the sent message
func unread(evt events.MessageSent) models.Message {
	m := evt.Message
	m.Read = false
	return m
}

func consultantEmail(m models.Message) string {
	switch {
	case m.To.Role == models.RoleConsultant:
		return m.To.Email
	case m.From.Role == models.RoleConsultant:
		return m.From.Email
	}
	return ""
}

func senderName(p models.Participant) string {
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}
