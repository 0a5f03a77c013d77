// internal/queue/queue.go
package queue

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// TopicCampaignUploads carries one event per stored campaign.
const TopicCampaignUploads = "campaign_uploads"

// CampaignUploaded is published after a campaign is appended to the store.
type CampaignUploaded struct {
	CampaignID int       `json:"campaign_id"`
	PostCount  int       `json:"post_count"`
	MediaTypes []string  `json:"media_types"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is the default event fan-out when no broker is configured.
type InMemoryQueue struct {
	mu       sync.Mutex
	logger   *logrus.Logger
	handlers map[string][]func(payload any) error
}

func NewInMemoryQueue(logger *logrus.Logger) *InMemoryQueue {
	return &InMemoryQueue{
		logger:   logger,
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		q.logger.Warnf("event handler failed (attempt %d/%d): %v", job.RetryCount, job.MaxRetries, err)

		if job.RetryCount > job.MaxRetries {
			q.logger.Errorf("event permanently dropped after %d attempts: %+v", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartUploadLogSubscriber logs a one-line summary for every campaign
// upload event. It is the default consumer when the broker is not in play.
func StartUploadLogSubscriber(q Queue, logger *logrus.Logger) {
	err := q.Subscribe(TopicCampaignUploads, func(payload any) error {
		event, ok := payload.(CampaignUploaded)
		if !ok {
			logger.Warnf("invalid payload type on %s, expected CampaignUploaded", TopicCampaignUploads)
			return nil // no retry
		}

		logger.Infof("campaign %d uploaded: %d posts across %d media types",
			event.CampaignID, event.PostCount, len(event.MediaTypes))
		return nil
	})
	if err != nil {
		logger.Warnf("failed to start subscriber for %s: %v", TopicCampaignUploads, err)
	}
}
