package config

import "time"

// ViewerConfig controls the in-memory viewer session table used for
// duplicate-viewer arbitration.  StaleAfter is how long a session survives
// without a heartbeat before it is swept; it is generous so that a TV that
// briefly loses network or sleeps does not forfeit its primary slot.
// MaxSessionIDLen bounds the client-generated session id.
type ViewerConfig struct {
	StaleAfter      time.Duration
	MaxSessionIDLen int
}

// LoadViewerConfig reads environment variables to build a ViewerConfig.
func LoadViewerConfig() ViewerConfig {
	return ViewerConfig{
		StaleAfter:      envDur("VIEWER_STALE_AFTER", 5*time.Minute),
		MaxSessionIDLen: envInt("VIEWER_MAX_SESSION_ID_LEN", 64),
	}
}
