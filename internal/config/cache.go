package config

import "time"

// DisplayCacheConfig defines settings for the display response cache.  TTL is
// the lifetime of a cached payload and is deliberately short: the cache trades
// a bounded amount of staleness for shielding the database from a fleet of
// screens polling on the same interval.  SMaxAge and StaleWhileRevalidate feed
// the Cache-Control header so intermediaries can absorb part of the load too.
type DisplayCacheConfig struct {
	TTL                  time.Duration
	SMaxAge              int
	StaleWhileRevalidate int
}

// LoadDisplayCacheConfig reads environment variables to build a
// DisplayCacheConfig.  Defaults are used when variables are not set.
func LoadDisplayCacheConfig() DisplayCacheConfig {
	return DisplayCacheConfig{
		TTL:                  envDur("DISPLAY_CACHE_TTL", 25*time.Second),
		SMaxAge:              envInt("DISPLAY_CACHE_SMAXAGE_SEC", 20),
		StaleWhileRevalidate: envInt("DISPLAY_CACHE_SWR_SEC", 40),
	}
}
