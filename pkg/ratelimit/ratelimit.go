// Package ratelimit caps how often a client may hit abuse-prone endpoints
// (OTP issuance, login, SOS).
package ratelimit

import (
	"context"
	"time"
)

// Limiter reports whether one more request for key fits in the budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Config is a budget of Requests per Window.
type Config struct {
	Requests int
	Window   time.Duration
}

func (c Config) normalized() Config {
	if c.Requests <= 0 {
		c.Requests = 20
	}
	if c.Window <= 0 {
		c.Window = time.Minute
	}
	return c
}
