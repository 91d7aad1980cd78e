package weatherservice

import (
	"fmt"
	"sync"
	"time"
)

// forecastCache TTL-кэш прогнозов, безопасный для конкурентного доступа.
// Кэш - только оптимизация: его отсутствие или вытеснение не влияет на
// корректность, лишь добавляет лишний вызов оракула.
type forecastCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	temperature float64
	expiresAt   time.Time
}

func newForecastCache(ttl time.Duration) *forecastCache {
	return &forecastCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// cacheKey ключ кэша по (locationId, date)
func cacheKey(locationID int64, date time.Time) string {
	return fmt.Sprintf("%d:%s", locationID, date.Format("2006-01-02"))
}

// get возвращает закэшированную температуру, если запись не истекла
func (c *forecastCache) get(key string, now time.Time) (float64, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || now.After(entry.expiresAt) {
		return 0, false
	}
	return entry.temperature, true
}

// set сохраняет температуру с истечением через ttl
func (c *forecastCache) set(key string, temperature float64, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Попутно вычищаем истекшие записи, чтобы кэш не рос бесконечно
	for k, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, k)
		}
	}

	c.entries[key] = cacheEntry{
		temperature: temperature,
		expiresAt:   now.Add(c.ttl),
	}
}
