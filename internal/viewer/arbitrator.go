// Package viewer tracks which browser/TV sessions are currently showing each
// screen and arbitrates between them: the session that opened the link first
// is the allowed primary viewer, later sessions are told to stand down. The
// table lives entirely in process memory; losing it on restart only means
// every surviving session re-runs the race on its next heartbeat.
package viewer

import (
	"sort"
	"sync"
	"time"
)

type session struct {
	firstSeen time.Time
	lastSeen  time.Time
}

// Arbitrator is the in-memory viewer session table. A session is tracked
// (has first/last seen timestamps) or absent; there is no other state.
type Arbitrator struct {
	mu         sync.Mutex
	screens    map[uint64]map[string]*session
	staleAfter time.Duration

	now func() time.Time // injectable for tests
}

// DuplicateScreen describes a screen observed with more than one fresh
// session, for operator alerting.
type DuplicateScreen struct {
	ScreenID uint64    `json:"screen_id"`
	Sessions int       `json:"sessions"`
	Oldest   time.Time `json:"oldest_first_seen"`
}

// New constructs an Arbitrator that treats sessions older than staleAfter
// (by last heartbeat) as gone.
func New(staleAfter time.Duration) *Arbitrator {
	return &Arbitrator{
		screens:    make(map[uint64]map[string]*session),
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// Heartbeat records a liveness signal from sessionID on screenID and reports
// whether that session is the allowed primary viewer, plus how many fresh
// sessions the screen has after the upsert.
//
// The upsert only ever refreshes lastSeen; firstSeen is set once on insert so
// repeated heartbeats cannot improve a session's standing. Stale sessions of
// every screen are swept synchronously here, which keeps the table honest
// without a background goroutine: a screen nobody heartbeats has no sessions
// worth arbitrating anyway.
func (a *Arbitrator) Heartbeat(screenID uint64, sessionID string) (allowed bool, sessions int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()

	byScreen := a.screens[screenID]
	if byScreen == nil {
		byScreen = make(map[string]*session)
		a.screens[screenID] = byScreen
	}
	s, ok := byScreen[sessionID]
	if !ok {
		s = &session{firstSeen: now}
		byScreen[sessionID] = s
	}
	s.lastSeen = now

	a.sweepLocked(now)

	// The sweep can only have removed other sessions; ours was touched just now.
	allowed = true
	for _, other := range byScreen {
		if other.firstSeen.Before(s.firstSeen) {
			allowed = false
			break
		}
	}
	return allowed, len(byScreen)
}

// sweepLocked removes every session, on every screen, whose last heartbeat is
// older than the staleness window. Caller holds a.mu.
func (a *Arbitrator) sweepLocked(now time.Time) {
	cutoff := now.Add(-a.staleAfter)
	for screenID, byScreen := range a.screens {
		for id, s := range byScreen {
			if s.lastSeen.Before(cutoff) {
				delete(byScreen, id)
			}
		}
		if len(byScreen) == 0 {
			delete(a.screens, screenID)
		}
	}
}

// SessionCount reports the number of fresh sessions currently tracked for a
// screen. Sessions past the staleness window are ignored but not evicted;
// eviction stays a heartbeat-path concern.
func (a *Arbitrator) SessionCount(screenID uint64) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	cutoff := a.now().Add(-a.staleAfter)
	n := 0
	for _, s := range a.screens[screenID] {
		if !s.lastSeen.Before(cutoff) {
			n++
		}
	}
	return n
}

// DuplicateScreens returns every screen currently observed with more than one
// fresh session, ordered by screen id. Read-only: it never mutates the table.
func (a *Arbitrator) DuplicateScreens() []DuplicateScreen {
	a.mu.Lock()
	defer a.mu.Unlock()

	cutoff := a.now().Add(-a.staleAfter)
	out := make([]DuplicateScreen, 0)
	for screenID, byScreen := range a.screens {
		var n int
		var oldest time.Time
		for _, s := range byScreen {
			if s.lastSeen.Before(cutoff) {
				continue
			}
			if n == 0 || s.firstSeen.Before(oldest) {
				oldest = s.firstSeen
			}
			n++
		}
		if n > 1 {
			out = append(out, DuplicateScreen{ScreenID: screenID, Sessions: n, Oldest: oldest})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScreenID < out[j].ScreenID })
	return out
}
