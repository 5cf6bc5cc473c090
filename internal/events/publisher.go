// Package events publishes marketplace lifecycle events over NATS.
// Publishing is best-effort: a broker outage is logged and never fails
// the request that triggered the event.
package events

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Event subjects
const (
	CategoryCreated = "category.created"
	CategoryDeleted = "category.deleted"
	ProductCreated  = "product.created"
	ProductDeleted  = "product.deleted"
)

// CategoryEvent represents a category lifecycle event
type CategoryEvent struct {
	EventType     string    `json:"eventType"`
	Timestamp     time.Time `json:"timestamp"`
	CategoryID    uint      `json:"categoryId"`
	CategoryTitle string    `json:"categoryTitle"`
}

// ProductEvent represents a product lifecycle event
type ProductEvent struct {
	EventType     string    `json:"eventType"`
	Timestamp     time.Time `json:"timestamp"`
	ProductID     string    `json:"productId"`
	Title         string    `json:"title"`
	CategoryTitle string    `json:"categoryTitle"`
	UserID        int64     `json:"userId"`
}

// Publisher publishes marketplace events to NATS
type Publisher struct {
	nc     *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to NATS and returns an event publisher
func NewPublisher(logger *logrus.Logger) (*Publisher, error) {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	nc, err := nats.Connect(natsURL,
		nats.Name("marketplace-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Infof("[NATS] Reconnected to %s", nc.ConnectedUrl())
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warnf("[NATS] Disconnected: %v", err)
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("[NATS] Connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{
		nc:     nc,
		logger: logger.WithField("component", "events.publisher"),
	}, nil
}

func (p *Publisher) publish(subject string, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to marshal event")
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to publish event")
	}
}

// PublishCategoryCreated publishes a category created event
func (p *Publisher) PublishCategoryCreated(categoryID uint, title string) {
	p.publish(CategoryCreated, &CategoryEvent{
		EventType:     CategoryCreated,
		Timestamp:     time.Now().UTC(),
		CategoryID:    categoryID,
		CategoryTitle: title,
	})
}

// PublishCategoryDeleted publishes a category deleted event
func (p *Publisher) PublishCategoryDeleted(categoryID uint, title string) {
	p.publish(CategoryDeleted, &CategoryEvent{
		EventType:     CategoryDeleted,
		Timestamp:     time.Now().UTC(),
		CategoryID:    categoryID,
		CategoryTitle: title,
	})
}

// PublishProductCreated publishes a product created event
func (p *Publisher) PublishProductCreated(productID, title, categoryTitle string, userID int64) {
	p.publish(ProductCreated, &ProductEvent{
		EventType:     ProductCreated,
		Timestamp:     time.Now().UTC(),
		ProductID:     productID,
		Title:         title,
		CategoryTitle: categoryTitle,
		UserID:        userID,
	})
}

// PublishProductDeleted publishes a product deleted event
func (p *Publisher) PublishProductDeleted(productID, title, categoryTitle string, userID int64) {
	p.publish(ProductDeleted, &ProductEvent{
		EventType:     ProductDeleted,
		Timestamp:     time.Now().UTC(),
		ProductID:     productID,
		Title:         title,
		CategoryTitle: categoryTitle,
		UserID:        userID,
	})
}

// Close drains the NATS connection
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
