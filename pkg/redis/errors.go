package redis

import "errors"

var (
	ErrAddrRequired = errors.New("redis: address is required")
)
