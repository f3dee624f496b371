package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"poker_club_backend/internal/models"
)

// LiveUpdateRepository stores the latest live status pushed by each club.
type LiveUpdateRepository interface {
	GetAll() ([]models.LiveUpdateEntry, error)
	GetByClubID(clubID string) (*models.LiveStatus, error)
	Upsert(executor SQLExecutor, clubID string, status *models.LiveStatus) error
}

type liveUpdateRepository struct {
	db *sql.DB
}

// NewLiveUpdateRepository creates a new instance of LiveUpdateRepository.
func NewLiveUpdateRepository(db *sql.DB) LiveUpdateRepository {
	return &liveUpdateRepository{db: db}
}

// GetAll returns the live status of every approved club that has published one.
func (r *liveUpdateRepository) GetAll() ([]models.LiveUpdateEntry, error) {
	query := `SELECT lu.club_id, lu.live_update
	          FROM club_live_updates lu
	          JOIN clubs c ON c.id = lu.club_id
	          WHERE c.status = $1
	          ORDER BY lu.club_id`

	rows, err := r.db.Query(query, string(models.ClubStatusApproved))
	if err != nil {
		return nil, fmt.Errorf("%w: querying live updates: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	entries := []models.LiveUpdateEntry{}
	for rows.Next() {
		var entry models.LiveUpdateEntry
		var raw []byte
		if err := rows.Scan(&entry.RedirectURL, &raw); err != nil {
			return nil, fmt.Errorf("%w: scanning live update: %v", ErrDatabaseError, err)
		}
		if err := decodeJSONColumn(raw, &entry.LiveUpdate, "live_update"); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating live update rows: %v", ErrDatabaseError, err)
	}
	return entries, nil
}

// GetByClubID returns one club's live status.
func (r *liveUpdateRepository) GetByClubID(clubID string) (*models.LiveStatus, error) {
	var raw []byte
	err := r.db.QueryRow(`SELECT live_update FROM club_live_updates WHERE club_id = $1`, clubID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting live update for club %s: %v", ErrDatabaseError, clubID, err)
	}
	status := &models.LiveStatus{}
	if err := decodeJSONColumn(raw, status, "live_update"); err != nil {
		return nil, err
	}
	return status, nil
}

// Upsert replaces the club's live status.
func (r *liveUpdateRepository) Upsert(executor SQLExecutor, clubID string, status *models.LiveStatus) error {
	raw, err := jsonColumn(status)
	if err != nil {
		return err
	}
	query := `INSERT INTO club_live_updates (club_id, live_update, updated_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (club_id) DO UPDATE SET live_update = EXCLUDED.live_update, updated_at = EXCLUDED.updated_at`
	if _, err := executor.Exec(query, clubID, raw, time.Now()); err != nil {
		return wrapWriteError(err, "upserting live update for club "+clubID)
	}
	return nil
}
