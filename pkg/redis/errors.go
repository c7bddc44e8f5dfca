package redis

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrEmptyConnectionURL           = errors.New("empty redis connection URL")
	ErrNotReady                     = errors.New("redis is not ready")
	ErrSubscribeFailed              = errors.New("redis subscribe failed")
	ErrSubscriptionClosed           = errors.New("redis subscription closed")
	ErrReadFailed                   = errors.New("redis read failed")
)
