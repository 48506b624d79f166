// Package reminder watches upcoming subscription payments and raises a notice
// for each one once.
package reminder

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/theirongolddev/finboard/internal/api"
	"github.com/theirongolddev/finboard/internal/logger"
	"github.com/theirongolddev/finboard/internal/notify"
)

// FetchFunc returns subscriptions billed within the next days.
type FetchFunc func(ctx context.Context, days int) ([]api.Subscription, error)

// Config controls the poller.
type Config struct {
	DaysAhead    int
	Interval     time.Duration
	EventsBuffer int
}

// Event records one reminder that was raised.
type Event struct {
	ID           int64            `json:"id"`
	Timestamp    time.Time        `json:"timestamp"`
	Subscription api.Subscription `json:"subscription"`
}

// Status is a point-in-time view of the poller.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DaysAhead       int       `json:"days_ahead"`
	Upcoming        int       `json:"upcoming"`
	Notified        int       `json:"notified"`
	LastError       string    `json:"last_error,omitempty"`
}

type dueKey struct {
	id   int64
	date string
}

// Poller polls for upcoming payments until its context is cancelled.
type Poller struct {
	cfg   Config
	fetch FetchFunc
	notes notify.Notifier
	log   *logger.Logger
	now   func() time.Time

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	upcoming    int
	seen        map[dueKey]struct{}
	nextEventID int64
	events      []Event
}

// New returns a poller. A nil notifier or logger is replaced with a no-op.
func New(cfg Config, fetch FetchFunc, notes notify.Notifier, log *logger.Logger) *Poller {
	if cfg.DaysAhead < 1 {
		cfg.DaysAhead = 7
	}
	if cfg.Interval < time.Second {
		cfg.Interval = time.Hour
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 100
	}
	if notes == nil {
		notes = notify.Discard
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Poller{
		cfg:       cfg,
		fetch:     fetch,
		notes:     notes,
		log:       log,
		now:       time.Now,
		startedAt: time.Now(),
		seen:      make(map[dueKey]struct{}),
	}
}

// Run polls once immediately and then on every interval tick.
func (p *Poller) Run(ctx context.Context) error {
	p.Poll(ctx)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll fetches upcoming payments and notifies for those not seen before.
// It returns the number of new reminders.
func (p *Poller) Poll(ctx context.Context) int {
	subs, err := p.fetch(ctx, p.cfg.DaysAhead)
	now := p.now()
	if err != nil {
		p.mu.Lock()
		p.lastError = err.Error()
		p.lastPollAt = now
		p.pollCount++
		p.mu.Unlock()
		p.log.Warn("reminder poll failed", logger.F("error", err.Error()))
		return 0
	}

	var fresh []Event
	p.mu.Lock()
	p.lastPollAt = now
	p.pollCount++
	p.lastError = ""
	p.upcoming = 0
	for _, s := range subs {
		p.upcoming++
		k := dueKey{id: s.ID, date: s.NextBillingDate}
		if _, ok := p.seen[k]; ok {
			continue
		}
		p.seen[k] = struct{}{}
		p.nextEventID++
		fresh = append(fresh, Event{ID: p.nextEventID, Timestamp: now, Subscription: s})
	}
	p.mu.Unlock()

	for _, ev := range fresh {
		p.publishEvent(ev)
		p.notes.Notify(notify.Notice{Level: notify.Info, Message: reminderText(ev.Subscription, now)})
	}
	p.log.Debug("reminder poll",
		logger.F("upcoming", len(subs)),
		logger.F("new", len(fresh)),
	)
	return len(fresh)
}

func reminderText(s api.Subscription, now time.Time) string {
	due, err := time.ParseInLocation("2006-01-02", s.NextBillingDate, time.Local)
	if err != nil {
		return fmt.Sprintf("%s payment of %.2f is coming up", s.Name, s.Amount)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	switch days := int(math.Round(due.Sub(today).Hours() / 24)); {
	case days < 0:
		return fmt.Sprintf("%s payment of %.2f is overdue", s.Name, s.Amount)
	case days == 0:
		return fmt.Sprintf("%s payment of %.2f is due today", s.Name, s.Amount)
	case days == 1:
		return fmt.Sprintf("%s payment of %.2f is due tomorrow", s.Name, s.Amount)
	default:
		return fmt.Sprintf("%s payment of %.2f is due in %d days", s.Name, s.Amount, days)
	}
}

func (p *Poller) publishEvent(ev Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	if len(p.events) > p.cfg.EventsBuffer {
		p.events = p.events[len(p.events)-p.cfg.EventsBuffer:]
	}
}

// Events returns a copy of the retained reminder events, oldest first.
func (p *Poller) Events() []Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	events := make([]Event, len(p.events))
	copy(events, p.events)
	return events
}

// Status returns the poller's current state.
func (p *Poller) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return Status{
		StartedAt:       p.startedAt,
		LastPollAt:      p.lastPollAt,
		PollIntervalSec: int(p.cfg.Interval.Seconds()),
		PollCount:       p.pollCount,
		DaysAhead:       p.cfg.DaysAhead,
		Upcoming:        p.upcoming,
		Notified:        len(p.seen),
		LastError:       p.lastError,
	}
}
