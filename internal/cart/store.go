package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	redisclient "github.com/niastore/nia-storefront/pkg/redis"
)

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(visitorID string) string
}

// Store keeps carts in the session store, keyed by visitor id.
type Store interface {
	Load(ctx context.Context, visitorID string) (*Cart, error)
	Save(ctx context.Context, visitorID string, c *Cart) error
	Delete(ctx context.Context, visitorID string) error
}

type sessionStore struct {
	kv  kvStore
	ttl time.Duration
}

// NewSessionStore builds a Store over the redis client. Every save refreshes the ttl.
func NewSessionStore(kv kvStore, ttl time.Duration) (Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("session store client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &sessionStore{kv: kv, ttl: ttl}, nil
}

func (s *sessionStore) Load(ctx context.Context, visitorID string) (*Cart, error) {
	key, err := s.key(visitorID)
	if err != nil {
		return nil, err
	}
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if redisclient.IsNil(err) {
			return New(), nil
		}
		return nil, err
	}
	return decode(raw), nil
}

func (s *sessionStore) Save(ctx context.Context, visitorID string, c *Cart) error {
	key, err := s.key(visitorID)
	if err != nil {
		return err
	}
	if c == nil {
		c = New()
	}
	c.Version = SchemaVersion
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return s.kv.Set(ctx, key, string(payload), s.ttl)
}

func (s *sessionStore) Delete(ctx context.Context, visitorID string) error {
	key, err := s.key(visitorID)
	if err != nil {
		return err
	}
	return s.kv.Del(ctx, key)
}

func (s *sessionStore) key(visitorID string) (string, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return "", fmt.Errorf("visitor id required")
	}
	return s.kv.CartKey(visitorID), nil
}

// decode never fails: unreadable or foreign-version payloads yield an empty cart.
func decode(raw string) *Cart {
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return New()
	}
	if c.Version != SchemaVersion {
		return New()
	}
	lines := c.Lines[:0]
	for _, line := range c.Lines {
		if line.ProductID == 0 || line.Quantity <= 0 {
			continue
		}
		lines = append(lines, line)
	}
	c.Lines = lines
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	return &c
}
