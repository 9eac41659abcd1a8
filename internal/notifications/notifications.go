// Package notifications publishes registry events to a notification
// service. Delivery is fire-and-forget: messages are queued, sent by a
// single rate-limited worker and dropped when the queue is full.
package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/JaimeStill/document-registry/internal/auth"
	"github.com/JaimeStill/document-registry/internal/config"
	"github.com/JaimeStill/document-registry/internal/metrics"
	"github.com/JaimeStill/document-registry/pkg/lifecycle"
)

// Kanaal is the channel every registry event is published on.
const Kanaal = "documenten"

// Resource names used in messages and audit entries.
const (
	ResourceDocument   = "enkelvoudiginformatieobject"
	ResourceRelation   = "objectinformatieobject"
	ResourceUsageRight = "gebruiksrechten"
)

// Actions carried by a message.
const (
	ActionCreate        = "create"
	ActionUpdate        = "update"
	ActionPartialUpdate = "partial_update"
	ActionDestroy       = "destroy"
)

// Message is the body posted to the notification service.
type Message struct {
	Kanaal       string            `json:"kanaal"`
	HoofdObject  string            `json:"hoofdObject"`
	Resource     string            `json:"resource"`
	ResourceURL  string            `json:"resourceUrl"`
	Actie        string            `json:"actie"`
	Aanmaakdatum time.Time         `json:"aanmaakdatum"`
	Kenmerken    map[string]string `json:"kenmerken"`
}

// Notifier accepts messages for asynchronous delivery.
type Notifier interface {
	// Notify queues msg and reports whether it was accepted.
	Notify(msg Message) bool
}

// Dispatcher delivers queued messages over HTTP.
type Dispatcher struct {
	cfg     *config.NotificationsConfig
	queue   chan Message
	limiter *rate.Limiter
	client  *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
	done    chan struct{}
}

// New creates a Dispatcher. Messages are only delivered after Start.
func New(cfg *config.NotificationsConfig, logger *slog.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		cfg:     cfg,
		queue:   make(chan Message, cfg.QueueSize),
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.Burst, 1)),
		client:  &http.Client{Timeout: cfg.TimeoutDuration()},
		logger:  logger.With("system", "notifications"),
		metrics: m,
		done:    make(chan struct{}),
	}
}

// Notify queues msg without blocking. When the dispatcher is disabled the
// message is only logged.
func (d *Dispatcher) Notify(msg Message) bool {
	if msg.Kanaal == "" {
		msg.Kanaal = Kanaal
	}

	if !d.cfg.Enabled {
		d.logger.Debug("notification skipped", "actie", msg.Actie, "resource", msg.Resource, "url", msg.ResourceURL)
		return false
	}

	select {
	case d.queue <- msg:
		return true
	default:
		d.metrics.Notification(metrics.NotificationDropped)
		d.logger.Warn("notification queue full, message dropped", "actie", msg.Actie, "url", msg.ResourceURL)
		return false
	}
}

// Start runs the delivery worker until the coordinator shuts down.
// Messages still queued at shutdown are discarded.
func (d *Dispatcher) Start(lc *lifecycle.Coordinator) error {
	if !d.cfg.Enabled {
		close(d.done)
		return nil
	}

	ctx := lc.Context()
	go d.run(ctx)

	lc.OnShutdown(func() {
		<-ctx.Done()
		<-d.done
		d.logger.Info("notification dispatcher stopped", "pending", len(d.queue))
	})

	d.logger.Info("notification dispatcher started", "url", d.cfg.URL)
	return nil
}

func (d *Dispatcher) run(ctx context.Context) {
	defer close(d.done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-d.queue:
			if err := d.limiter.Wait(ctx); err != nil {
				return
			}
			if err := d.send(ctx, msg); err != nil {
				d.metrics.Notification(metrics.NotificationFailed)
				d.logger.Error("notification failed", "error", err, "actie", msg.Actie, "url", msg.ResourceURL)
				continue
			}
			d.metrics.Notification(metrics.NotificationSent)
		}
	}
}

func (d *Dispatcher) send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := auth.Sign(d.cfg.ClientCredentials, time.Now())
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("post message: status %d", resp.StatusCode)
	}
	return nil
}
