package notify

import (
	"fmt"

	"github.com/gregdel/pushover"
	"github.com/sirupsen/logrus"
)

const (
	PriorityNormal = 0
	PriorityHigh   = 1
)

type Notifier struct {
	app       *pushover.Pushover
	recipient *pushover.Recipient
	logger    *logrus.Logger
}

func NewNotifier(token, userKey string, logger *logrus.Logger) *Notifier {
	return &Notifier{
		app:       pushover.New(token),
		recipient: pushover.NewRecipient(userKey),
		logger:    logger,
	}
}

func (n *Notifier) Send(title, message string) error {
	return n.SendWithPriority(title, message, PriorityNormal)
}

func (n *Notifier) SendWithPriority(title, message string, priority int) error {
	msg := pushover.NewMessageWithTitle(message, title)
	msg.Priority = priority

	resp, err := n.app.SendMessage(msg, n.recipient)
	if err != nil {
		return fmt.Errorf("sending pushover notification: %w", err)
	}

	n.logger.WithFields(logrus.Fields{
		"title":      title,
		"status":     resp.Status,
		"request_id": resp.ID,
	}).Debug("notification sent")

	return nil
}

func (n *Notifier) SendJourneysFound(from, to string, count int) error {
	title := "Journeys Available"
	body := fmt.Sprintf("%d journey(s) found from %s to %s", count, from, to)
	return n.SendWithPriority(title, body, PriorityHigh)
}

func (n *Notifier) SendBookingConfirmed(trainIDs, status, reference string) error {
	title := "Booking Confirmed"
	body := fmt.Sprintf("Trains %s booked.\nStatus: %s", trainIDs, status)
	if reference != "" {
		body += fmt.Sprintf("\nReference: %s", reference)
	}
	return n.Send(title, body)
}

func (n *Notifier) SendWatchAborted(from, to string, reason string) error {
	title := "Journey Watch Stopped"
	body := fmt.Sprintf("Stopped watching %s to %s.\nReason: %s", from, to, reason)
	return n.SendWithPriority(title, body, PriorityHigh)
}
