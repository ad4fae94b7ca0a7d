package cooldown

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Set or Use with a duration <= 0.
var ErrInvalidDuration = errors.New("cooldown duration must be greater than zero")

// CooldownActiveError is returned by Use while the entity is still on
// cooldown.
type CooldownActiveError struct {
	Bucket    string
	EntityID  string
	Remaining time.Duration
}

func (e *CooldownActiveError) Error() string {
	return fmt.Sprintf("cooldown active for %s:%s, %s remaining", e.Bucket, e.EntityID, FormatRemaining(e.Remaining))
}

// Status is the result of a Check: a pure read, never a mutation.
type Status struct {
	OnCooldown bool
	Remaining  time.Duration
	Expiry     time.Time
}

// Metrics receives the removal count of every sweep.
type Metrics interface {
	Swept(removed int)
}

// Options configures a Manager. The zero value means: in-memory store,
// sweep every 5 minutes.
type Options struct {
	Store         Store
	SweepInterval time.Duration
	DisableSweep  bool
	Metrics       Metrics

	// Now overrides the clock, for tests.
	Now func() time.Time
}

const defaultSweepInterval = 5 * time.Minute

// Manager owns a Store and an optional background sweep ticker. The ticker
// is started at construction and stopped by Destroy; it never blocks
// concurrent Check/Set/Use calls.
type Manager struct {
	store   Store
	now     func() time.Time
	metrics Metrics

	mu sync.Mutex // serializes the check+set inside Use

	stopOnce  sync.Once
	stopSweep chan struct{}
	sweepDone chan struct{}
}

func NewManager(opts Options) *Manager {
	if opts.Store == nil {
		opts.Store = NewMemoryStore()
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = defaultSweepInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m := &Manager{
		store:     opts.Store,
		now:       opts.Now,
		metrics:   opts.Metrics,
		stopSweep: make(chan struct{}),
		sweepDone: make(chan struct{}),
	}
	if opts.DisableSweep {
		close(m.sweepDone)
		return m
	}
	go func() {
		defer close(m.sweepDone)
		ticker := time.NewTicker(opts.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-m.stopSweep:
				return
			case <-ticker.C:
				if _, err := m.Sweep(context.Background()); err != nil {
					slog.Warn("can't sweep cooldown store", "error", err.Error())
				}
			}
		}
	}()
	return m
}

func key(bucket, entityID string) string {
	return bucket + ":" + entityID
}

// Check reports whether bucket:entityID is on cooldown. Expired entries
// read as absent even before they are swept.
func (m *Manager) Check(ctx context.Context, bucket, entityID string) (Status, error) {
	expiry, ok, err := m.store.Get(ctx, key(bucket, entityID))
	if err != nil {
		return Status{}, err
	}
	now := m.now()
	if !ok || !expiry.After(now) {
		return Status{}, nil
	}
	return Status{OnCooldown: true, Remaining: expiry.Sub(now), Expiry: expiry}, nil
}

// Set puts bucket:entityID on cooldown for d, overwriting any existing
// entry unconditionally. Returns the expiry instant.
func (m *Manager) Set(ctx context.Context, bucket, entityID string, d time.Duration) (time.Time, error) {
	if d <= 0 {
		return time.Time{}, ErrInvalidDuration
	}
	expiry := m.now().Add(d)
	if err := m.store.Set(ctx, key(bucket, entityID), expiry, d); err != nil {
		return time.Time{}, err
	}
	return expiry, nil
}

// Use atomically checks then sets: it fails with *CooldownActiveError while
// the entity is on cooldown, otherwise starts a new cooldown of d. Call
// sites should prefer this over a separate Check + Set.
func (m *Manager) Use(ctx context.Context, bucket, entityID string, d time.Duration) error {
	if d <= 0 {
		return ErrInvalidDuration
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	status, err := m.Check(ctx, bucket, entityID)
	if err != nil {
		return err
	}
	if status.OnCooldown {
		return &CooldownActiveError{Bucket: bucket, EntityID: entityID, Remaining: status.Remaining}
	}
	_, err = m.Set(ctx, bucket, entityID, d)
	return err
}

// Remaining returns the remaining cooldown, zero if absent or expired.
func (m *Manager) Remaining(ctx context.Context, bucket, entityID string) (time.Duration, error) {
	status, err := m.Check(ctx, bucket, entityID)
	if err != nil {
		return 0, err
	}
	return status.Remaining, nil
}

// Reset clears one entry early.
func (m *Manager) Reset(ctx context.Context, bucket, entityID string) error {
	return m.store.Delete(ctx, key(bucket, entityID))
}

// ResetAll clears every entry in the bucket regardless of entity.
func (m *Manager) ResetAll(ctx context.Context, bucket string) error {
	return m.store.DeleteBucket(ctx, bucket+":")
}

// Sweep removes all physically expired entries and returns the count.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	removed, err := m.store.Sweep(ctx, m.now())
	if err != nil {
		return 0, err
	}
	if m.metrics != nil {
		m.metrics.Swept(removed)
	}
	return removed, nil
}

// Destroy stops the sweep ticker and clears the store. Safe to call more
// than once.
func (m *Manager) Destroy(ctx context.Context) error {
	m.stopOnce.Do(func() {
		close(m.stopSweep)
	})
	<-m.sweepDone
	return m.store.Clear(ctx)
}
