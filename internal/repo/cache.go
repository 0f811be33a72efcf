package repo

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// NewCache создаёт общий read-through кэш get-by-id для сторов.
// Ключи — "<entity>:<id>", инвалидация — на update/delete той же записи.
func NewCache(ttl time.Duration) *cache.Cache {
	return cache.New(ttl, 2*ttl)
}

func cacheKey(prefix string, id uint) string {
	return prefix + ":" + formatID(id)
}
