// ABOUTME: Style profile persistence over Charm KV
// ABOUTME: Recompute overwrites wholesale; Get returns nil when absent
package style

import (
	"fmt"
	"log"

	"github.com/tweetsmith/tweetsmith/internal/charm"
	"github.com/tweetsmith/tweetsmith/internal/models"
)

// Store is the KV surface profile storage needs; satisfied by *charm.Client
type Store interface {
	SetJSON(key string, value interface{}) error
	GetJSON(key string, dest interface{}) error
	Delete(key string) error
}

// ProfileStore persists one StyleProfile and one TendencyAnalysis per user
type ProfileStore struct {
	kv Store
}

// NewProfileStore creates a profile store over the given KV backend
func NewProfileStore(kv Store) *ProfileStore {
	return &ProfileStore{kv: kv}
}

// Recompute derives a fresh profile from the post batch and saves it,
// fully replacing any prior profile for the user. No merging with older
// batches: the profile is a pure function of the posts passed in.
func (s *ProfileStore) Recompute(userID string, posts []models.Post) (*models.StyleProfile, error) {
	if len(posts) == 0 {
		return nil, fmt.Errorf("%w: cannot compute style profile from zero posts", models.ErrValidation)
	}

	profile := models.ComputeStyleProfile(userID, posts)
	if err := s.Save(profile); err != nil {
		return nil, err
	}

	log.Printf("[style] recomputed profile for user %s from %d posts", userID, len(posts))
	return profile, nil
}

// Save overwrites the stored profile for the profile's user
func (s *ProfileStore) Save(profile *models.StyleProfile) error {
	if err := s.kv.SetJSON(charm.ProfileKey(profile.UserID), profile); err != nil {
		return fmt.Errorf("failed to save style profile for %s: %w", profile.UserID, err)
	}
	return nil
}

// Get returns the user's profile, or nil (with no error) when none exists.
// Callers treat nil as "infer style from retrieved examples instead".
func (s *ProfileStore) Get(userID string) (*models.StyleProfile, error) {
	var profile models.StyleProfile
	if err := s.kv.GetJSON(charm.ProfileKey(userID), &profile); err != nil {
		// Missing key surfaces as an error from the KV layer; absence
		// of a profile is an expected state, not a failure.
		return nil, nil
	}
	return &profile, nil
}

// Delete removes the user's profile and tendency analysis. No-op if absent.
func (s *ProfileStore) Delete(userID string) error {
	if err := s.kv.Delete(charm.ProfileKey(userID)); err != nil {
		return err
	}
	return s.kv.Delete(charm.TendencyKey(userID))
}

// SaveTendency overwrites the stored tendency analysis for a user
func (s *ProfileStore) SaveTendency(analysis *models.TendencyAnalysis) error {
	if err := s.kv.SetJSON(charm.TendencyKey(analysis.UserID), analysis); err != nil {
		return fmt.Errorf("failed to save tendency analysis for %s: %w", analysis.UserID, err)
	}
	return nil
}

// GetTendency returns the user's tendency analysis, or nil when none exists
func (s *ProfileStore) GetTendency(userID string) (*models.TendencyAnalysis, error) {
	var analysis models.TendencyAnalysis
	if err := s.kv.GetJSON(charm.TendencyKey(userID), &analysis); err != nil {
		return nil, nil
	}
	return &analysis, nil
}
