package repositories

import (
	"database/sql"
	"time"

	"poker_club_backend/internal/models"
)

// RegistrationRepository persists player sign-ups.
type RegistrationRepository interface {
	CreateRegistration(executor SQLExecutor, reg *models.PlayerRegistration) (int64, error)
}

type registrationRepository struct {
	db *sql.DB
}

// NewRegistrationRepository creates a new instance of RegistrationRepository.
func NewRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) CreateRegistration(executor SQLExecutor, reg *models.PlayerRegistration) (int64, error) {
	query := `INSERT INTO player_registrations (name, email, phone, city, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now()
	}
	err := executor.QueryRow(query, reg.Name, reg.Email, reg.Phone, reg.City, reg.CreatedAt).Scan(&reg.ID)
	if err != nil {
		return 0, wrapWriteError(err, "creating player registration")
	}
	return reg.ID, nil
}
