package handlers

import (
	"mime/multipart"

	"poker_club_backend/internal/clubfilter"
	"poker_club_backend/internal/models"
	"poker_club_backend/internal/services"
)

type FakeClubService struct {
	ListClubsFunc  func(criteria clubfilter.Criteria) (*services.ClubListResult, error)
	ListAreasFunc  func() ([]string, error)
	GetClubFunc    func(id string) (*models.Club, error)
	SubmitClubFunc func(req services.SubmitClubRequest) (*models.Club, error)
}

func (f *FakeClubService) ListClubs(criteria clubfilter.Criteria) (*services.ClubListResult, error) {
	if f.ListClubsFunc != nil {
		return f.ListClubsFunc(criteria)
	}
	return &services.ClubListResult{Clubs: []services.ClubListItem{}}, nil
}

func (f *FakeClubService) ListAreas() ([]string, error) {
	if f.ListAreasFunc != nil {
		return f.ListAreasFunc()
	}
	return []string{}, nil
}

func (f *FakeClubService) GetClub(id string) (*models.Club, error) {
	if f.GetClubFunc != nil {
		return f.GetClubFunc(id)
	}
	return nil, services.ErrClubNotFound
}

func (f *FakeClubService) SubmitClub(req services.SubmitClubRequest) (*models.Club, error) {
	if f.SubmitClubFunc != nil {
		return f.SubmitClubFunc(req)
	}
	return &models.Club{ID: "new", Status: models.ClubStatusPending}, nil
}

type FakeAuthService struct {
	LoginFunc       func(req services.LoginRequest) (*services.AuthResponse, error)
	GetClubFunc     func(clubID string) (*models.Club, error)
	SetPasswordFunc func(clubID, password string, approve bool) error
}

func (f *FakeAuthService) Login(req services.LoginRequest) (*services.AuthResponse, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(req)
	}
	return nil, services.ErrInvalidCredentials
}

func (f *FakeAuthService) GetClub(clubID string) (*models.Club, error) {
	if f.GetClubFunc != nil {
		return f.GetClubFunc(clubID)
	}
	return nil, services.ErrClubNotFound
}

func (f *FakeAuthService) SetPassword(clubID, password string, approve bool) error {
	if f.SetPasswordFunc != nil {
		return f.SetPasswordFunc(clubID, password, approve)
	}
	return nil
}

type FakeLiveStatusService struct {
	GetAllFunc func() ([]models.LiveUpdateEntry, error)
	GetFunc    func(clubID string) (*models.LiveStatus, error)
	UpdateFunc func(clubID string, status models.LiveStatus) (*models.LiveStatus, error)
}

func (f *FakeLiveStatusService) GetAll() ([]models.LiveUpdateEntry, error) {
	if f.GetAllFunc != nil {
		return f.GetAllFunc()
	}
	return []models.LiveUpdateEntry{}, nil
}

func (f *FakeLiveStatusService) Get(clubID string) (*models.LiveStatus, error) {
	if f.GetFunc != nil {
		return f.GetFunc(clubID)
	}
	return nil, services.ErrLiveStatusNotFound
}

func (f *FakeLiveStatusService) Update(clubID string, status models.LiveStatus) (*models.LiveStatus, error) {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(clubID, status)
	}
	return &status, nil
}

type FakeOfferService struct {
	GetFunc    func(clubID string) (*models.Offer, error)
	UpdateFunc func(clubID string, req services.UpdateOfferRequest, image *multipart.FileHeader) (*models.Offer, error)
}

func (f *FakeOfferService) Get(clubID string) (*models.Offer, error) {
	if f.GetFunc != nil {
		return f.GetFunc(clubID)
	}
	return &models.Offer{ClubID: clubID, NoOffers: true}, nil
}

func (f *FakeOfferService) Update(clubID string, req services.UpdateOfferRequest, image *multipart.FileHeader) (*models.Offer, error) {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(clubID, req, image)
	}
	return &models.Offer{ClubID: clubID, NoOffers: req.NoOffers, Text: req.Text}, nil
}

type FakeRegistrationService struct {
	RegisterFunc func(req services.RegisterPlayerRequest) (*models.PlayerRegistration, error)
}

func (f *FakeRegistrationService) Register(req services.RegisterPlayerRequest) (*models.PlayerRegistration, error) {
	if f.RegisterFunc != nil {
		return f.RegisterFunc(req)
	}
	return &models.PlayerRegistration{ID: 1, Name: req.Name}, nil
}
