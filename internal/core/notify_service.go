package core

import (
	"context"
	"encoding/json"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"giftlist-backend-go/pkg/mailer"
	"giftlist-backend-go/pkg/messagequeue"
)

// notifyService delivers access requests to list owners. When a message
// queue is configured the note is published for downstream consumers;
// otherwise it falls back to emailing the owner directly, resolving the
// owner's address through Firebase Auth.
type notifyService struct {
	queue     messagequeue.MessageQueue
	queueName string

	authClient *auth.Client
	smtpUser   string
	smtpPass   string
	sender     string

	logger *zap.Logger
}

// NewNotifyService creates a new Notifier instance. queue may be nil, in
// which case the SMTP fallback is used; with neither configured every
// delivery fails with ErrNotifyUnavailable.
func NewNotifyService(queue messagequeue.MessageQueue, queueName string, authClient *auth.Client, smtpUser, smtpPass, sender string, logger *zap.Logger) Notifier {
	return &notifyService{
		queue:      queue,
		queueName:  queueName,
		authClient: authClient,
		smtpUser:   smtpUser,
		smtpPass:   smtpPass,
		sender:     sender,
		logger:     logger,
	}
}

// AccessRequested hands the viewer's contact details and the list id to
// whichever delivery path is configured.
func (s *notifyService) AccessRequested(ctx context.Context, note AccessRequestNote) error {
	if s.queue != nil {
		body, err := json.Marshal(note)
		if err != nil {
			return fmt.Errorf("encoding access request for list '%s': %w", note.ListID, err)
		}
		if err := s.queue.Publish(s.queueName, body); err != nil {
			return fmt.Errorf("publishing access request for list '%s': %w", note.ListID, err)
		}
		s.logger.Info("access request published",
			zap.String("listId", note.ListID), zap.String("queue", s.queueName))
		return nil
	}

	if s.smtpUser != "" && s.smtpPass != "" && s.authClient != nil {
		owner, err := s.authClient.GetUser(ctx, note.OwnerID)
		if err != nil {
			return fmt.Errorf("resolving owner '%s' for access request: %w", note.OwnerID, err)
		}
		subject := fmt.Sprintf("Someone asked for the password to %q", note.ListTitle)
		body := fmt.Sprintf(
			"<p>%s (%s) asked for access to your list <b>%s</b>.</p><p>Share the password with them if you want to let them in.</p>",
			note.Name, note.Email, note.ListTitle)
		if err := mailer.SendEmail(owner.Email, s.sender, subject, body, s.smtpUser, s.smtpPass); err != nil {
			return fmt.Errorf("mailing access request for list '%s': %w", note.ListID, err)
		}
		s.logger.Info("access request mailed to owner", zap.String("listId", note.ListID))
		return nil
	}

	return ErrNotifyUnavailable
}
