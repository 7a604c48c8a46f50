package anidb

import (
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
)

// newCircuitBreaker returns the breaker wrapped around FILE exchanges.
// It trips after repeated signs of server trouble (timeouts, busy or
// error replies) so a struggling or rate-limiting server is not hammered
// with the rest of a batch. Domain outcomes like "no such file" are
// successes as far as the breaker is concerned.
func newCircuitBreaker() *gobreaker.CircuitBreaker[*FileMetadata] {
	settings := gobreaker.Settings{
		Name:        "anidb-udp",
		MaxRequests: 1,
		Interval:    2 * time.Minute,
		Timeout:     5 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			switch {
			case err == nil:
				return true
			case errors.Is(err, ErrTimeout),
				errors.Is(err, ErrServerBusy),
				errors.Is(err, ErrServerError):
				return false
			}
			return true
		},
	}
	return gobreaker.NewCircuitBreaker[*FileMetadata](settings)
}
