package metric

import (
	"testing"

	"dgx/collector"
	"dgx/cooldown"
	"dgx/router"
)

var (
	_ router.Metrics    = (*Metrics)(nil)
	_ cooldown.Metrics  = (*Metrics)(nil)
	_ collector.Metrics = (*Metrics)(nil)
)

func TestInitIsIdempotent(t *testing.T) {
	m1 := Init()
	m2 := Init()

	// both handles must feed the same registered collectors without
	// panicking on duplicate registration
	m1.Dispatched("matched")
	m2.Dispatched("fallback")
	m1.CollectorStarted()
	m2.CollectorEnded("timeout")
	m1.Swept(3)
}
