// Package repository defines error types that are reused across the
// display store query files. These sentinel values allow higher layers
// such as the assembler and handlers to distinguish the expected
// "stale link" case from genuine store failures. A screen that cannot
// be resolved is steady state for this service: unattended displays
// keep polling links long after an admin deletes or deactivates the
// screen behind them.
package repository

import "errors"

// ErrScreenNotFound is returned when no active screen of an active
// business matches the given public identifier or broadcast code.
// The assembler translates this into a sentinel not-found payload
// rather than an error response.
var ErrScreenNotFound = errors.New("screen not found")

// ErrTemplateNotFound is returned when a referenced template row does
// not exist. Unlike a missing screen this is unexpected: the reference
// came from the store itself, so handlers treat it as a hard failure.
var ErrTemplateNotFound = errors.New("template not found")
