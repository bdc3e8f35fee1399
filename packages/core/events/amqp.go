package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"core/utils"

	"github.com/streadway/amqp"
)

// DefaultRedialInterval is the shortest gap between two dial attempts after
// the broker connection is lost.
const DefaultRedialInterval = 5 * time.Second

var (
	ErrPublisherClosed   = errors.New("publisher closed")
	ErrBrokerUnavailable = errors.New("amqp broker unavailable")
)

// amqpChannel is the part of *amqp.Channel the publisher uses.
type amqpChannel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// amqpSession is one live connection and the channel opened on it. done
// fires when either of them closes.
type amqpSession struct {
	channel amqpChannel
	close   func() error
	done    []<-chan *amqp.Error
}

func (s *amqpSession) lost() bool {
	for _, done := range s.done {
		select {
		case <-done:
			return true
		default:
		}
	}
	return false
}

type amqpDialer func() (*amqpSession, error)

// AMQPPublisher publishes events to a durable topic exchange, using the event
// type as routing key. A dropped connection is redialled on the next
// Publish, at most once per redial interval.
type AMQPPublisher struct {
	exchange string
	dial     amqpDialer
	clock    utils.Clock
	log      *slog.Logger
	interval time.Duration

	mu         sync.Mutex
	session    *amqpSession
	nextRedial time.Time
	closed     bool
}

func NewAMQPPublisher(url, exchange string, log *slog.Logger) (*AMQPPublisher, error) {
	dial := func() (*amqpSession, error) {
		return dialAMQP(url, exchange)
	}
	return newAMQPPublisher(exchange, dial, utils.NewRealClock(), log)
}

func newAMQPPublisher(exchange string, dial amqpDialer, clock utils.Clock, log *slog.Logger) (*AMQPPublisher, error) {
	if log == nil {
		log = slog.Default()
	}

	session, err := dial()
	if err != nil {
		return nil, err
	}

	return &AMQPPublisher{
		exchange: exchange,
		dial:     dial,
		clock:    clock,
		log:      log,
		interval: DefaultRedialInterval,
		session:  session,
	}, nil
}

func dialAMQP(url, exchange string) (*amqpSession, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true, false, false, false, nil,
	)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp exchange declare: %w", err)
	}

	return &amqpSession{
		channel: channel,
		close: func() error {
			if err := channel.Close(); err != nil {
				_ = conn.Close()
				return err
			}
			return conn.Close()
		},
		done: []<-chan *amqp.Error{
			conn.NotifyClose(make(chan *amqp.Error, 1)),
			channel.NotifyClose(make(chan *amqp.Error, 1)),
		},
	}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         event.Type,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}

	session, err := p.liveSession()
	if err != nil {
		return err
	}

	err = session.channel.Publish(p.exchange, event.Type, false, false, msg)
	if err == nil || !(errors.Is(err, amqp.ErrClosed) || session.lost()) {
		return err
	}

	// the connection went away under us; retry once on a fresh one
	p.drop()
	session, err = p.liveSession()
	if err != nil {
		return err
	}
	return session.channel.Publish(p.exchange, event.Type, false, false, msg)
}

// liveSession returns the current session, dialling a new one if the old one
// was lost. Callers hold p.mu.
func (p *AMQPPublisher) liveSession() (*amqpSession, error) {
	if p.session != nil && p.session.lost() {
		p.log.Warn("amqp connection lost", slog.String("exchange", p.exchange))
		p.drop()
	}
	if p.session != nil {
		return p.session, nil
	}

	now := p.clock.Now()
	if now.Before(p.nextRedial) {
		return nil, ErrBrokerUnavailable
	}

	session, err := p.dial()
	if err != nil {
		p.nextRedial = now.Add(p.interval)
		return nil, fmt.Errorf("%w: %w", ErrBrokerUnavailable, err)
	}

	p.log.Info("amqp connection restored", slog.String("exchange", p.exchange))
	p.session = session
	return session, nil
}

func (p *AMQPPublisher) drop() {
	if p.session == nil {
		return
	}
	_ = p.session.close()
	p.session = nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.session == nil {
		return nil
	}
	err := p.session.close()
	p.session = nil
	return err
}
