package mailer

import (
	"encoding/json"
	"fmt"
	"log"

	"gerai/pkg/rabbitmq"
)

// Mailer is the notification collaborator: it dispatches one HTML mail.
// Callers never depend on delivery succeeding for their own correctness; a
// failed dispatch is reported as an error and left to the caller to log.
type Mailer interface {
	SendMail(to string, subject string, htmlBody string) error
}

// Job is the wire format for a queued mail.
type Job struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
}

// QueueMailer publishes mail jobs to the notification queue, where a worker
// picks them up for actual delivery.
type QueueMailer struct {
	mq *rabbitmq.Client
}

// NewQueueMailer creates a QueueMailer on top of an existing RabbitMQ
// client.
func NewQueueMailer(mq *rabbitmq.Client) *QueueMailer {
	return &QueueMailer{
		mq: mq,
	}
}

// SendMail marshals the mail into a Job and publishes it.
func (m *QueueMailer) SendMail(to string, subject string, htmlBody string) error {
	job := Job{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	}
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal mail job: %w", err)
	}
	if err := m.mq.Publish(rabbitmq.NotificationQueue, body); err != nil {
		return fmt.Errorf("failed to enqueue mail to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes mails to the log instead of delivering them. It is the
// development fallback when no broker is configured, and the delivery
// backend behind the queue consumer until a real SMTP transport is plugged
// in.
type LogMailer struct{}

// SendMail logs the mail.
func (LogMailer) SendMail(to string, subject string, htmlBody string) error {
	log.Printf("mail to %s: %s\n%s", to, subject, htmlBody)
	return nil
}
