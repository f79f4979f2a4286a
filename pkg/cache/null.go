package cache

import (
	"context"
	"time"
)

var _ Cache = NullCache{}

// NullCache stores nothing. It backs the "none" cache backend and the
// --no-cache flag, so every layout and artifact is computed fresh.
type NullCache struct{}

// NewNullCache returns a [NullCache].
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
