package repokit

import (
	"context"
	"fmt"
	"time"
)

// Pinger is any dependency that can answer a liveness probe
type Pinger interface {
	Ping(context.Context) error
}

// MustPing panics if a dependency doesn't answer a Ping within timeout
// ctx without a deadline gets five seconds
func MustPing(ctx context.Context, name string, p Pinger) {
	if p == nil {
		panic(fmt.Sprintf("%s: nil dependency", name))
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := p.Ping(ctx); err != nil {
		panic(fmt.Sprintf("%s ping failed: %v", name, err))
	}
}
