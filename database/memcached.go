package database

import (
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// Guard keeps submission keys in Memcached for a short while,
// so an identical post cannot be sent twice in a row
type Guard struct {
	Mem *memcache.Client
	TTL time.Duration
}

// NewGuard connects to the Memcached server at address
func NewGuard(address string, ttl time.Duration) *Guard {
	return &Guard{
		Mem: memcache.New(address),
		TTL: ttl,
	}
}

// Acquire stores key unless it already exists.
// It returns false when key is still held by a previous submission.
func (g *Guard) Acquire(key string) (bool, error) {
	err := g.Mem.Add(&memcache.Item{
		Key:        key,
		Value:      []byte("1"),
		Expiration: g.expiration(),
	})
	if errors.Is(err, memcache.ErrNotStored) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return true, nil
}

// Release removes key, a missing key is not an error
func (g *Guard) Release(key string) error {
	if err := g.Mem.Delete(key); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return err
	}

	return nil
}

// expiration in seconds, never below one as 0 means no expiration
func (g *Guard) expiration() int32 {
	seconds := int32(g.TTL / time.Second)
	if seconds < 1 {
		return 1
	}

	return seconds
}
