package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"poker_club_backend/internal/models"
)

// ClubRepository defines the interface for club directory database operations.
type ClubRepository interface {
	CreateClub(executor SQLExecutor, club *models.Club) error
	GetClubByID(id string) (*models.Club, error) // includes live status when present
	ListClubs(status models.ClubStatus) ([]models.Club, error)
	GetCredentials(id string) (passwordHash string, status models.ClubStatus, err error)
	SetCredentials(executor SQLExecutor, id, passwordHash string, status models.ClubStatus) error
}

type clubRepository struct {
	db *sql.DB
}

// NewClubRepository creates a new instance of ClubRepository.
func NewClubRepository(db *sql.DB) ClubRepository {
	return &clubRepository{db: db}
}

const clubColumns = `c.id, c.name, c.area, c.city, c.address, c.lat, c.lng, c.description,
	c.images, c.video, c.stakes, c.contact_info, c.operating_hours, c.amenities,
	c.status, c.created_at, c.updated_at`

// CreateClub inserts a new club. The club's ID must already be set.
func (r *clubRepository) CreateClub(executor SQLExecutor, club *models.Club) error {
	query := `INSERT INTO clubs (id, name, area, city, address, lat, lng, description,
	              images, video, stakes, contact_info, operating_hours, amenities,
	              status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	currentTime := time.Now()
	if club.CreatedAt.IsZero() {
		club.CreatedAt = currentTime
	}
	club.UpdatedAt = currentTime
	if club.Status == "" {
		club.Status = models.ClubStatusPending
	}

	var lat, lng sql.NullFloat64
	if club.Location.Coordinates != nil {
		lat = sql.NullFloat64{Float64: club.Location.Coordinates.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: club.Location.Coordinates.Lng, Valid: true}
	}

	images, err := jsonColumn(nonNil(club.Images))
	if err != nil {
		return err
	}
	stakes, err := jsonColumn(nonNil(club.Stakes))
	if err != nil {
		return err
	}
	contact, err := jsonColumn(club.ContactInfo)
	if err != nil {
		return err
	}
	hours, err := jsonColumn(nonNil(club.OperatingHours))
	if err != nil {
		return err
	}
	amenities, err := jsonColumn(nonNil(club.Amenities))
	if err != nil {
		return err
	}

	_, err = executor.Exec(query,
		club.ID, club.Name, club.Location.Area, club.Location.City, club.Location.Address, lat, lng,
		club.Description, images, club.Video, stakes, contact, hours, amenities,
		string(club.Status), club.CreatedAt, club.UpdatedAt,
	)
	if err != nil {
		return wrapWriteError(err, "creating club "+club.ID)
	}
	return nil
}

// GetClubByID retrieves a club by its id, joined with its latest live status.
func (r *clubRepository) GetClubByID(id string) (*models.Club, error) {
	query := `SELECT ` + clubColumns + `, lu.live_update
	          FROM clubs c
	          LEFT JOIN club_live_updates lu ON lu.club_id = c.id
	          WHERE c.id = $1`

	var liveRaw []byte
	club, err := scanClub(r.db.QueryRow(query, id), &liveRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting club %s: %v", ErrDatabaseError, id, err)
	}
	if len(liveRaw) > 0 {
		club.LiveStatus = &models.LiveStatus{}
		if err := decodeJSONColumn(liveRaw, club.LiveStatus, "live_update"); err != nil {
			return nil, err
		}
	}
	return club, nil
}

// ListClubs returns every club in the given state, oldest first. Live status is not loaded.
func (r *clubRepository) ListClubs(status models.ClubStatus) ([]models.Club, error) {
	query := `SELECT ` + clubColumns + ` FROM clubs c WHERE c.status = $1 ORDER BY c.created_at ASC, c.id ASC`

	rows, err := r.db.Query(query, string(status))
	if err != nil {
		return nil, fmt.Errorf("%w: querying clubs: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	clubs := []models.Club{}
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning club: %v", ErrDatabaseError, err)
		}
		clubs = append(clubs, *club)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating club rows: %v", ErrDatabaseError, err)
	}
	return clubs, nil
}

// GetCredentials returns the stored password hash (empty when none is set) and the club status.
func (r *clubRepository) GetCredentials(id string) (string, models.ClubStatus, error) {
	var hash sql.NullString
	var status string
	err := r.db.QueryRow(`SELECT password_hash, status FROM clubs WHERE id = $1`, id).Scan(&hash, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", ErrNotFound
		}
		return "", "", fmt.Errorf("%w: getting credentials for club %s: %v", ErrDatabaseError, id, err)
	}
	return hash.String, models.ClubStatus(status), nil
}

// SetCredentials stores a new password hash and status for a club.
func (r *clubRepository) SetCredentials(executor SQLExecutor, id, passwordHash string, status models.ClubStatus) error {
	result, err := executor.Exec(
		`UPDATE clubs SET password_hash = $1, status = $2, updated_at = $3 WHERE id = $4`,
		passwordHash, string(status), time.Now(), id,
	)
	if err != nil {
		return wrapWriteError(err, "setting credentials for club "+id)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for club %s: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// scanClub reads the clubColumns projection plus any extra trailing destinations.
func scanClub(row scanner, extra ...interface{}) (*models.Club, error) {
	club := &models.Club{}
	var lat, lng sql.NullFloat64
	var images, stakes, contact, hours, amenities []byte
	var status string

	dest := []interface{}{
		&club.ID, &club.Name, &club.Location.Area, &club.Location.City, &club.Location.Address,
		&lat, &lng, &club.Description, &images, &club.Video, &stakes, &contact, &hours, &amenities,
		&status, &club.CreatedAt, &club.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	club.Status = models.ClubStatus(status)
	if lat.Valid && lng.Valid {
		club.Location.Coordinates = &models.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
	}

	club.Images = []string{}
	club.Stakes = []models.Stake{}
	club.OperatingHours = []models.OperatingHours{}
	club.Amenities = []string{}
	for _, col := range []struct {
		raw  []byte
		dest interface{}
		name string
	}{
		{images, &club.Images, "images"},
		{stakes, &club.Stakes, "stakes"},
		{contact, &club.ContactInfo, "contact_info"},
		{hours, &club.OperatingHours, "operating_hours"},
		{amenities, &club.Amenities, "amenities"},
	} {
		if err := decodeJSONColumn(col.raw, col.dest, col.name); err != nil {
			return nil, err
		}
	}
	return club, nil
}

// nonNil keeps JSONB arrays as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
