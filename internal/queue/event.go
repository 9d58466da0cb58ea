// Package queue defines message payloads exchanged over the message broker.
package queue

// DuplicateViewerEvent is published when a heartbeat leaves a screen with
// more than one concurrent fresh viewer session. It carries enough for a
// downstream consumer to alert an operator without querying the service.
type DuplicateViewerEvent struct {
	ScreenID   uint64 `json:"screen_id"`
	PublicID   string `json:"public_id"`
	Sessions   int    `json:"sessions"`
	ObservedAt string `json:"observed_at"`
}
