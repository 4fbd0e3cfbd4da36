// ABOUTME: Sentinel errors for the draft generation pipeline
// ABOUTME: Callers match with errors.Is; wrapping adds the specific context
package models

import (
	"errors"
	"fmt"
)

// Pipeline errors represent caller mistakes and precondition failures.
// Upstream service errors (OpenAI, storage) propagate wrapped but untyped.
var (
	// ErrValidation indicates malformed caller input (batch too large,
	// mismatched lengths). Never retried.
	ErrValidation = errors.New("invalid input")

	// ErrNoHistory indicates no similar posts exist for the user.
	// A precondition failure: ingest posts first, do not retry.
	ErrNoHistory = errors.New("no post history")

	// ErrProvider indicates the embedding or completion backend failed
	// or returned an empty response.
	ErrProvider = errors.New("provider failure")

	// ErrDimensionMismatch indicates two vectors (or a vector and the
	// collection) disagree on dimension. A hard error, never padded.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// NoHistoryError builds the caller-facing precondition error for a user
// with no indexed posts.
func NoHistoryError(userID string) error {
	return fmt.Errorf("%w: no similar posts found for user %s, ingest posts first", ErrNoHistory, userID)
}
