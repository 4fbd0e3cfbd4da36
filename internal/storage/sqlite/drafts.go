// ABOUTME: Draft history storage operations for SQLite
// ABOUTME: Implements CRUD, status transitions, and per-user deletion
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tweetsmith/tweetsmith/internal/models"
)

// DraftStore handles draft history persistence
type DraftStore struct {
	db *DB
}

// NewDraftStore creates a new DraftStore
func NewDraftStore(db *DB) *DraftStore {
	return &DraftStore{db: db}
}

// Save saves a draft record, assigning an ID and timestamps when missing
func (s *DraftStore) Save(record *models.DraftRecord) error {
	if record.UserID == "" {
		return fmt.Errorf("%w: draft record requires a user ID", models.ErrValidation)
	}
	if record.Text == "" {
		return fmt.Errorf("%w: draft record requires text", models.ErrValidation)
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Status == "" {
		record.Status = models.DraftStatusGenerated
	}
	now := time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	similarIDs, err := json.Marshal(record.SimilarPostIDs)
	if err != nil {
		return fmt.Errorf("failed to encode similar post IDs: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO drafts (id, user_id, idea, text, similar_post_ids, confidence, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			idea = excluded.idea,
			text = excluded.text,
			similar_post_ids = excluded.similar_post_ids,
			confidence = excluded.confidence,
			status = excluded.status,
			updated_at = excluded.updated_at
	`, record.ID, record.UserID, record.Idea, record.Text, string(similarIDs),
		record.Confidence, record.Status, record.CreatedAt, record.UpdatedAt)

	return err
}

// SaveResult persists every draft from a generation result as individual records
func (s *DraftStore) SaveResult(userID, idea string, result *models.DraftResult) ([]models.DraftRecord, error) {
	similarIDs := make([]string, len(result.SimilarPosts))
	for i, sp := range result.SimilarPosts {
		similarIDs[i] = sp.Post.ID
	}

	records := make([]models.DraftRecord, 0, len(result.Drafts))
	for _, text := range result.Drafts {
		record := models.DraftRecord{
			UserID:         userID,
			Idea:           idea,
			Text:           text,
			SimilarPostIDs: similarIDs,
			Confidence:     result.Confidence,
		}
		if err := s.Save(&record); err != nil {
			return records, fmt.Errorf("failed to save draft: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

// GetByID retrieves a draft by its ID, nil when not found
func (s *DraftStore) GetByID(id string) (*models.DraftRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, idea, text, similar_post_ids, confidence, status, created_at, updated_at
		FROM drafts
		WHERE id = ?
	`, id)

	record, err := scanDraft(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListByUser retrieves a user's drafts, newest first. An empty status
// matches all statuses; limit <= 0 means no limit.
func (s *DraftStore) ListByUser(userID, status string, limit int) ([]models.DraftRecord, error) {
	query := `
		SELECT id, user_id, idea, text, similar_post_ids, confidence, status, created_at, updated_at
		FROM drafts
		WHERE user_id = ?`
	args := []interface{}{userID}

	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []models.DraftRecord
	for rows.Next() {
		record, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// UpdateStatus transitions a draft to a new lifecycle status
func (s *DraftStore) UpdateStatus(id, status string) error {
	switch status {
	case models.DraftStatusGenerated, models.DraftStatusEdited, models.DraftStatusPosted:
	default:
		return fmt.Errorf("%w: unknown draft status %q", models.ErrValidation, status)
	}

	result, err := s.db.Exec(`
		UPDATE drafts SET status = ?, updated_at = ? WHERE id = ?
	`, status, time.Now(), id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: draft %s not found", models.ErrValidation, id)
	}
	return nil
}

// UpdateText replaces a draft's text and marks it edited
func (s *DraftStore) UpdateText(id, text string) error {
	if text == "" {
		return fmt.Errorf("%w: draft text must not be empty", models.ErrValidation)
	}

	result, err := s.db.Exec(`
		UPDATE drafts SET text = ?, status = ?, updated_at = ? WHERE id = ?
	`, text, models.DraftStatusEdited, time.Now(), id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: draft %s not found", models.ErrValidation, id)
	}
	return nil
}

// CountByUser returns the number of stored drafts for a user
func (s *DraftStore) CountByUser(userID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM drafts WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

// DeleteUser removes all drafts for a user and reports how many were deleted.
// Deleting a user with no drafts is not an error.
func (s *DraftStore) DeleteUser(userID string) (int, error) {
	result, err := s.db.Exec(`DELETE FROM drafts WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDraft(row scanner) (*models.DraftRecord, error) {
	var (
		record     models.DraftRecord
		similarIDs sql.NullString
	)

	err := row.Scan(&record.ID, &record.UserID, &record.Idea, &record.Text,
		&similarIDs, &record.Confidence, &record.Status,
		&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if similarIDs.Valid && similarIDs.String != "" && similarIDs.String != "null" {
		if err := json.Unmarshal([]byte(similarIDs.String), &record.SimilarPostIDs); err != nil {
			return nil, fmt.Errorf("failed to decode similar post IDs for draft %s: %w", record.ID, err)
		}
	}

	return &record, nil
}
