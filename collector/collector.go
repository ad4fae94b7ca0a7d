// Package collector provides time- and count-bounded subscriptions to the
// component interactions of a single rendered message.
package collector

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// EndReason says which of the three exclusive termination paths fired.
type EndReason int

const (
	EndNone EndReason = iota
	EndTimeout
	EndStop
	EndCountReached
)

func (r EndReason) String() string {
	switch r {
	case EndTimeout:
		return "timeout"
	case EndStop:
		return "stop"
	case EndCountReached:
		return "count-reached"
	default:
		return "none"
	}
}

// Filter decides whether a component interaction qualifies for collection.
// Non-qualifying events do not count toward MaxEvents.
type Filter func(i *discordgo.InteractionCreate) bool

// Options bounds a collector. The zero value collects forever with no
// event cap, which is almost never what a session wants.
type Options struct {
	Timeout   time.Duration
	MaxEvents int
	Filter    Filter
}

// Metrics observes collector lifecycle for instrumentation.
type Metrics interface {
	CollectorStarted()
	CollectorEnded(reason string)
}

var (
	metricsMu sync.Mutex
	metrics   Metrics
)

// SetMetrics installs an optional process-wide lifecycle hook.
func SetMetrics(m Metrics) {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	metrics = m
}

// Collector owns one gateway subscription scoped to one message. Exactly
// one of timeout, manual Stop or MaxEvents executes the terminal
// transition; Done is closed afterwards and Reason reports which path won.
type Collector struct {
	events chan *discordgo.InteractionCreate
	done   chan struct{}

	mu   sync.Mutex
	seen int

	stopOnce sync.Once
	reason   EndReason
	remove   func()
	timer    *time.Timer
	max      int
	filter   Filter
}

// New subscribes to component interactions on messageID and starts the
// timeout clock.
func New(s *discordgo.Session, messageID string, opts Options) *Collector {
	c := &Collector{
		events: make(chan *discordgo.InteractionCreate, 16),
		done:   make(chan struct{}),
		max:    opts.MaxEvents,
		filter: opts.Filter,
	}
	c.remove = s.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionMessageComponent {
			return
		}
		if i.Message == nil || i.Message.ID != messageID {
			return
		}
		c.collect(i)
	})
	if opts.Timeout > 0 {
		c.timer = time.AfterFunc(opts.Timeout, func() {
			c.stop(EndTimeout)
		})
	}
	metricsMu.Lock()
	m := metrics
	metricsMu.Unlock()
	if m != nil {
		m.CollectorStarted()
	}
	return c
}

func (c *Collector) collect(i *discordgo.InteractionCreate) {
	select {
	case <-c.done:
		return
	default:
	}
	if c.filter != nil && !c.filter(i) {
		return
	}
	c.mu.Lock()
	if c.max > 0 && c.seen >= c.max {
		c.mu.Unlock()
		return
	}
	c.seen++
	reached := c.max > 0 && c.seen >= c.max
	select {
	case c.events <- i:
	case <-c.done:
	default:
		// consumer stalled, drop rather than block the gateway handler
	}
	c.mu.Unlock()
	if reached {
		c.stop(EndCountReached)
	}
}

// Events delivers qualifying interactions. The channel is never closed;
// select on Done alongside it.
func (c *Collector) Events() <-chan *discordgo.InteractionCreate {
	return c.events
}

// Done is closed once the collector has terminated.
func (c *Collector) Done() <-chan struct{} {
	return c.done
}

// Reason is valid once Done is closed.
func (c *Collector) Reason() EndReason {
	select {
	case <-c.done:
		return c.reason
	default:
		return EndNone
	}
}

// Stop terminates the collector explicitly.
func (c *Collector) Stop() {
	c.stop(EndStop)
}

func (c *Collector) stop(reason EndReason) {
	c.stopOnce.Do(func() {
		c.reason = reason
		if c.timer != nil {
			c.timer.Stop()
		}
		if c.remove != nil {
			c.remove()
		}
		close(c.done)
		metricsMu.Lock()
		m := metrics
		metricsMu.Unlock()
		if m != nil {
			m.CollectorEnded(reason.String())
		}
	})
}
