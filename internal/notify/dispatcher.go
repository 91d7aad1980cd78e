// Package notify фоновая доставка уведомлений по принципу fire-and-forget.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/integrations/notifyservice"
)

// Sender интерфейс клиента notification-сервиса
type Sender interface {
	Send(ctx context.Context, event *notifyservice.Event) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для учета отправленных уведомлений (опционально)
type Metrics interface {
	IncNotification(eventType string, err error)
}

// Config настройки диспетчера уведомлений
type Config struct {
	QueueSize   int
	Workers     int
	SendTimeout time.Duration
}

// Dispatcher ограниченная очередь уведомлений с фоновыми воркерами.
//
// Dispatch никогда не блокирует вызывающего: при заполненной очереди событие
// отбрасывается с записью в лог. Ошибки доставки логируются и не
// пробрасываются - падение notification-сервиса не должно влиять на
// результат бронирования и на его латентность.
type Dispatcher struct {
	sender  Sender
	cfg     Config
	log     Logger
	metrics Metrics

	queue chan *notifyservice.Event
	wg    sync.WaitGroup
}

// NewDispatcher создает диспетчер уведомлений.
// metrics может быть nil, если сбор метрик выключен.
func NewDispatcher(sender Sender, cfg Config, log Logger, metrics Metrics) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 10 * time.Second
	}

	return &Dispatcher{
		sender:  sender,
		cfg:     cfg,
		log:     log,
		metrics: metrics,
		queue:   make(chan *notifyservice.Event, cfg.QueueSize),
	}
}

// Start запускает фоновые воркеры доставки
func (d *Dispatcher) Start() {
	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	d.log.Info("notify: dispatcher started (workers=%d, queue=%d)", d.cfg.Workers, d.cfg.QueueSize)
}

// Dispatch ставит событие в очередь доставки, не блокируя вызывающего.
// При переполненной очереди событие отбрасывается.
func (d *Dispatcher) Dispatch(event *notifyservice.Event) {
	select {
	case d.queue <- event:
	default:
		d.log.Warn("notify: queue is full, dropping %s for booking id=%d", event.Type, event.Booking.ID)
		if d.metrics != nil {
			d.metrics.IncNotification(string(event.Type), context.DeadlineExceeded)
		}
	}
}

// Stop закрывает очередь и дожидается доставки оставшихся событий.
// Ожидание ограничено переданным контекстом.
func (d *Dispatcher) Stop(ctx context.Context) {
	close(d.queue)

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.log.Info("notify: dispatcher stopped")
	case <-ctx.Done():
		d.log.Warn("notify: dispatcher stop timed out, some events may be lost")
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for event := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.SendTimeout)
		err := d.sender.Send(ctx, event)
		cancel()

		if d.metrics != nil {
			d.metrics.IncNotification(string(event.Type), err)
		}

		if err != nil {
			// Намеренно только логируем: доставка best-effort
			d.log.Error("notify: failed to send %s for booking id=%d: %v", event.Type, event.Booking.ID, err)
			continue
		}

		d.log.Info("notify: sent %s for booking id=%d", event.Type, event.Booking.ID)
	}
}
