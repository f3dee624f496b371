package services

import (
	"mime/multipart"

	"poker_club_backend/internal/models"
	"poker_club_backend/internal/repositories"
)

// FakeClubRepo is a ClubRepository whose behaviour is set per test.
type FakeClubRepo struct {
	CreateClubFunc     func(executor repositories.SQLExecutor, club *models.Club) error
	GetClubByIDFunc    func(id string) (*models.Club, error)
	ListClubsFunc      func(status models.ClubStatus) ([]models.Club, error)
	GetCredentialsFunc func(id string) (string, models.ClubStatus, error)
	SetCredentialsFunc func(executor repositories.SQLExecutor, id, hash string, status models.ClubStatus) error
}

func (f *FakeClubRepo) CreateClub(executor repositories.SQLExecutor, club *models.Club) error {
	if f.CreateClubFunc != nil {
		return f.CreateClubFunc(executor, club)
	}
	return nil
}

func (f *FakeClubRepo) GetClubByID(id string) (*models.Club, error) {
	if f.GetClubByIDFunc != nil {
		return f.GetClubByIDFunc(id)
	}
	return nil, repositories.ErrNotFound
}

func (f *FakeClubRepo) ListClubs(status models.ClubStatus) ([]models.Club, error) {
	if f.ListClubsFunc != nil {
		return f.ListClubsFunc(status)
	}
	return []models.Club{}, nil
}

func (f *FakeClubRepo) GetCredentials(id string) (string, models.ClubStatus, error) {
	if f.GetCredentialsFunc != nil {
		return f.GetCredentialsFunc(id)
	}
	return "", "", repositories.ErrNotFound
}

func (f *FakeClubRepo) SetCredentials(executor repositories.SQLExecutor, id, hash string, status models.ClubStatus) error {
	if f.SetCredentialsFunc != nil {
		return f.SetCredentialsFunc(executor, id, hash, status)
	}
	return nil
}

type FakeLiveUpdateRepo struct {
	GetAllFunc      func() ([]models.LiveUpdateEntry, error)
	GetByClubIDFunc func(clubID string) (*models.LiveStatus, error)
	UpsertFunc      func(executor repositories.SQLExecutor, clubID string, status *models.LiveStatus) error
}

func (f *FakeLiveUpdateRepo) GetAll() ([]models.LiveUpdateEntry, error) {
	if f.GetAllFunc != nil {
		return f.GetAllFunc()
	}
	return []models.LiveUpdateEntry{}, nil
}

func (f *FakeLiveUpdateRepo) GetByClubID(clubID string) (*models.LiveStatus, error) {
	if f.GetByClubIDFunc != nil {
		return f.GetByClubIDFunc(clubID)
	}
	return nil, repositories.ErrNotFound
}

func (f *FakeLiveUpdateRepo) Upsert(executor repositories.SQLExecutor, clubID string, status *models.LiveStatus) error {
	if f.UpsertFunc != nil {
		return f.UpsertFunc(executor, clubID, status)
	}
	return nil
}

type FakeOfferRepo struct {
	GetByClubIDFunc func(clubID string) (*models.Offer, error)
	UpsertFunc      func(executor repositories.SQLExecutor, offer *models.Offer) error
}

func (f *FakeOfferRepo) GetByClubID(clubID string) (*models.Offer, error) {
	if f.GetByClubIDFunc != nil {
		return f.GetByClubIDFunc(clubID)
	}
	return nil, repositories.ErrNotFound
}

func (f *FakeOfferRepo) Upsert(executor repositories.SQLExecutor, offer *models.Offer) error {
	if f.UpsertFunc != nil {
		return f.UpsertFunc(executor, offer)
	}
	return nil
}

type FakeRegistrationRepo struct {
	CreateRegistrationFunc func(executor repositories.SQLExecutor, reg *models.PlayerRegistration) (int64, error)
}

func (f *FakeRegistrationRepo) CreateRegistration(executor repositories.SQLExecutor, reg *models.PlayerRegistration) (int64, error) {
	if f.CreateRegistrationFunc != nil {
		return f.CreateRegistrationFunc(executor, reg)
	}
	reg.ID = 1
	return 1, nil
}

type FakeImageStore struct {
	SaveFunc   func(file *multipart.FileHeader) (string, error)
	RemoveFunc func(url string) error
}

func (f *FakeImageStore) Save(file *multipart.FileHeader) (string, error) {
	if f.SaveFunc != nil {
		return f.SaveFunc(file)
	}
	return "/uploads/new.png", nil
}

func (f *FakeImageStore) Remove(url string) error {
	if f.RemoveFunc != nil {
		return f.RemoveFunc(url)
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

func testClub(id, area string, stakes ...models.Stake) models.Club {
	return models.Club{
		ID:       id,
		Name:     id,
		Location: models.Location{Area: area, City: "Bangalore", Address: "1 Test Road"},
		Stakes:   stakes,
		OperatingHours: []models.OperatingHours{
			{Day: "Monday", Open: "16:00", Close: "02:00"},
		},
		Status: models.ClubStatusApproved,
	}
}

func stake(name string, sb, bb, minBuyIn float64) models.Stake {
	return models.Stake{Name: name, SmallBlind: sb, BigBlind: bb, MinBuyIn: minBuyIn, Currency: "₹"}
}
