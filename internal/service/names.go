package service

import (
	"context"
	"net/url"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/patrickmn/go-cache"
)

const nameTTL = 5 * time.Minute

// NameService is the early, non-authoritative fast path for name
// uniqueness. It remembers recently stored names in a local cache and,
// when configured, a shared memcached tier. The storage uniqueness
// constraint stays the single source of truth; a miss here proves
// nothing and a hit only short-circuits a write that would fail
// anyway.
type NameService struct {
	local *cache.Cache
	mc    *memcache.Client
}

func NewNameService(mc *memcache.Client) *NameService {
	return &NameService{
		local: cache.New(nameTTL, 2*nameTTL),
		mc:    mc,
	}
}

// memcached keys must be short and free of whitespace, so the name is
// query-escaped.
func nameKey(kind, name string) string {
	return "shaker:name:" + kind + ":" + url.QueryEscape(name)
}

func (s *NameService) Seen(ctx context.Context, kind, name string) bool {
	key := nameKey(kind, name)
	if _, found := s.local.Get(key); found {
		return true
	}
	if s.mc != nil {
		if _, err := s.mc.Get(key); err == nil {
			s.local.Set(key, struct{}{}, cache.DefaultExpiration)
			return true
		}
	}
	return false
}

func (s *NameService) Remember(ctx context.Context, kind, name string) {
	key := nameKey(kind, name)
	s.local.Set(key, struct{}{}, cache.DefaultExpiration)
	if s.mc != nil {
		s.mc.Set(&memcache.Item{
			Key:        key,
			Value:      []byte{1},
			Expiration: int32(nameTTL / time.Second),
		})
	}
}

func (s *NameService) Forget(ctx context.Context, kind, name string) {
	key := nameKey(kind, name)
	s.local.Delete(key)
	if s.mc != nil {
		s.mc.Delete(key)
	}
}
