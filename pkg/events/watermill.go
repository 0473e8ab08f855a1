// Package events carries item lifecycle events over PostgreSQL with Watermill.
//
// Writers publish inside their own database transaction (NewTxPublisher), so a
// row change and its event commit or roll back together. In forwarder mode those
// messages land in an internal queue and the forwarder daemon moves them to the
// real topic. Readers call Subscribe; every instance sharing a service name is one
// consumer group, so each message is handled once across the group.
//
// Handlers must be idempotent: a failing handler is retried with backoff and
// the message is Nacked for redelivery once retries run out.
package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/sbecerek/CatalogAPI/pkg/logger"
)

const (
	maxRetries      = 3
	retryBaseDelay  = time.Second
	shutdownTimeout = 30 * time.Second
	errBuffer       = 100

	forwarderTopic = "_forwarder_queue"
	forwarderGroup = "forwarder-consumer"
)

// Metadata keys stamped on every message by NewMessage.
const (
	MetadataEventID      = "event_id"
	MetadataEventVersion = "event_version"
)

// EventBus publishes and consumes item events through Watermill's SQL transport.
// It borrows the process-wide *sql.DB and never closes it.
type EventBus struct {
	db           *sql.DB
	log          logger.Logger
	wlog         watermill.LoggerAdapter
	subscriber   *watermillsql.Subscriber
	fwd          *forwarder.Forwarder
	useForwarder bool
	wg           sync.WaitGroup
}

// NewEventBus returns a bus whose transactional publishers write straight to
// the target topics. The worker uses it to subscribe.
func NewEventBus(db *sql.DB, serviceName string, log logger.Logger) (*EventBus, error) {
	return newEventBus(db, serviceName, log, false)
}

// NewEventBusWithForwarder returns a bus whose transactional publishers write
// to the forwarder queue. Call EnsureTopics and then StartForwarder before
// serving writes.
func NewEventBusWithForwarder(db *sql.DB, serviceName string, log logger.Logger) (*EventBus, error) {
	return newEventBus(db, serviceName, log, true)
}

func newEventBus(db *sql.DB, serviceName string, log logger.Logger, useForwarder bool) (*EventBus, error) {
	if db == nil {
		return nil, errors.New("events: nil database handle")
	}
	wlog := &slogAdapter{log: log}

	sub, err := watermillsql.NewSubscriber(db, subscriberConfig(serviceName+"-consumer"), wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}

	return &EventBus{
		db:           db,
		log:          log,
		wlog:         wlog,
		subscriber:   sub,
		useForwarder: useForwarder,
	}, nil
}

func publisherConfig(autoInitialize bool) watermillsql.PublisherConfig {
	return watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: autoInitialize,
	}
}

func subscriberConfig(consumerGroup string) watermillsql.SubscriberConfig {
	return watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    consumerGroup,
	}
}

// EnsureTopics creates the message and offset tables of topics. Transactional
// publishers cannot create tables mid-transaction, so every topic they write to
// has to exist first. In forwarder mode the forwarder queue is included.
func (b *EventBus) EnsureTopics(topics ...string) error {
	if b.useForwarder {
		topics = append([]string{forwarderTopic}, topics...)
	}
	for _, topic := range topics {
		if err := b.subscriber.SubscribeInitialize(topic); err != nil {
			return fmt.Errorf("events: initialize topic %s: %w", topic, err)
		}
	}
	return nil
}

// StartForwarder runs the daemon that drains the forwarder queue into the
// target topics. It returns once the daemon is running and may be called once.
func (b *EventBus) StartForwarder(ctx context.Context) error {
	if !b.useForwarder {
		return errors.New("events: StartForwarder called on non-forwarder EventBus")
	}
	if b.fwd != nil {
		return errors.New("events: forwarder already started")
	}

	queue, err := watermillsql.NewSubscriber(b.db, subscriberConfig(forwarderGroup), b.wlog)
	if err != nil {
		return fmt.Errorf("events: new forwarder subscriber: %w", err)
	}
	target, err := watermillsql.NewPublisher(b.db, publisherConfig(true), b.wlog)
	if err != nil {
		_ = queue.Close()
		return fmt.Errorf("events: new forwarder target publisher: %w", err)
	}
	fwd, err := forwarder.NewForwarder(queue, target, b.wlog, forwarder.Config{ForwarderTopic: forwarderTopic})
	if err != nil {
		_ = target.Close()
		_ = queue.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	b.fwd = fwd

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.log.InfoContext(ctx, "events: forwarder started")
		if err := fwd.Run(ctx); err != nil {
			b.log.ErrorContext(ctx, "events: forwarder stopped with error", "error", err)
			return
		}
		b.log.InfoContext(ctx, "events: forwarder stopped")
	}()

	select {
	case <-fwd.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: context cancelled waiting for forwarder: %w", ctx.Err())
	}
}

// NewTxPublisher returns a publisher whose writes belong to tx.
func (b *EventBus) NewTxPublisher(tx *sql.Tx) (message.Publisher, error) {
	pub, err := watermillsql.NewPublisher(tx, publisherConfig(false), b.wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new tx publisher: %w", err)
	}
	if !b.useForwarder {
		return pub, nil
	}
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: forwarderTopic}), nil
}

// Subscribe delivers messages of topic to handler on a background goroutine.
// handler sees the publisher's trace restored from the message metadata.
// A nil return Acks; errors are retried maxRetries times, then the message is
// Nacked and the error sent on the returned channel, which callers must drain.
// Close waits for in-flight handlers.
func (b *EventBus) Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error) {
	ch, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errBuffer)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer close(errCh)

		for msg := range ch {
			msgCtx := messageContext(ctx, msg)
			if err := retryWithBackoff(msgCtx, msg, handler, maxRetries, retryBaseDelay, b.log); err != nil {
				msg.Nack()
				select {
				case errCh <- err:
				default:
					b.log.ErrorContext(msgCtx, "events: error channel full, dropping error", "error", err, "topic", topic)
				}
				continue
			}
			msg.Ack()
		}
	}()

	return errCh, nil
}

// retryWithBackoff calls handler up to maxRetries times, doubling the delay
// after each failure. It stops early when ctx ends.
func retryWithBackoff(
	ctx context.Context,
	msg *message.Message,
	handler func(context.Context, *message.Message) error,
	maxRetries int,
	baseDelay time.Duration,
	log logger.Logger,
) error {
	delay := baseDelay
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}
		log.WarnContext(ctx, "events: handler failed, retrying",
			"attempt", attempt,
			"max_retries", maxRetries,
			"next_delay", delay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("events: handler failed after %d retries: %w", maxRetries, err)
}

// Ping reports whether the outbox database answers.
func (b *EventBus) Ping(ctx context.Context) error {
	if err := b.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops the subscriber and the forwarder, then waits up to
// shutdownTimeout for in-flight handlers.
func (b *EventBus) Close() error {
	if err := b.subscriber.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}
	if b.fwd != nil {
		if err := b.fwd.Close(); err != nil {
			return fmt.Errorf("events: close forwarder: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		b.log.Error("events: timed out waiting for in-flight handlers to complete")
	}
	return nil
}

// NewMessage wraps event as a JSON message carrying the event id, the schema
// version and the trace context of ctx.
func NewMessage(ctx context.Context, eventID string, version int, event any) (*message.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("events: marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(MetadataEventID, eventID)
	msg.Metadata.Set(MetadataEventVersion, strconv.Itoa(version))

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for k, v := range carrier {
		msg.Metadata.Set(k, v)
	}
	return msg, nil
}

// messageContext returns ctx carrying the trace stored in msg's metadata.
func messageContext(ctx context.Context, msg *message.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Metadata))
}

// slogAdapter bridges logger.Logger to watermill.LoggerAdapter.
type slogAdapter struct{ log logger.Logger }

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldsToArgs(fields), "error", err)...)
}
func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &slogAdapter{log: a.log.With(fieldsToArgs(fields)...)}
}

func fieldsToArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
