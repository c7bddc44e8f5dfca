package upstream

import "errors"

var (
	// ErrSubscribe wraps failures to establish a subscription.
	ErrSubscribe = errors.New("upstream: failed to subscribe")

	// ErrSubscriptionLost wraps failures while reading from an established subscription.
	ErrSubscriptionLost = errors.New("upstream: subscription lost")
)
