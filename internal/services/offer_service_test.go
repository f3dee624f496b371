package services

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poker_club_backend/internal/models"
	"poker_club_backend/internal/repositories"
	"poker_club_backend/internal/storage"
)

func existingOffer(imageURL string) *FakeOfferRepo {
	return &FakeOfferRepo{
		GetByClubIDFunc: func(clubID string) (*models.Offer, error) {
			return &models.Offer{ClubID: clubID, ImageURL: ptr(imageURL), Text: "old"}, nil
		},
	}
}

func TestOfferService_Get_NoneYet(t *testing.T) {
	svc := NewOfferService(&FakeOfferRepo{}, royalClubRepo(), &FakeImageStore{}, nil)

	offer, err := svc.Get("royal")
	require.NoError(t, err)
	assert.True(t, offer.NoOffers)
	assert.Equal(t, "royal", offer.ClubID)
}

func TestOfferService_Update_NewImage(t *testing.T) {
	offers := existingOffer("/uploads/old.png")
	var stored *models.Offer
	offers.UpsertFunc = func(_ repositories.SQLExecutor, offer *models.Offer) error {
		stored = offer
		return nil
	}
	var removed []string
	images := &FakeImageStore{
		RemoveFunc: func(url string) error {
			removed = append(removed, url)
			return nil
		},
	}
	svc := NewOfferService(offers, royalClubRepo(), images, nil)

	offer, err := svc.Update("royal", UpdateOfferRequest{Text: "  Free dinner  "}, &multipart.FileHeader{Filename: "promo.png"})
	require.NoError(t, err)
	require.NotNil(t, stored)

	require.NotNil(t, offer.ImageURL)
	assert.Equal(t, "/uploads/new.png", *offer.ImageURL)
	assert.Equal(t, "Free dinner", offer.Text)
	assert.False(t, offer.NoOffers)
	assert.Equal(t, []string{"/uploads/old.png"}, removed)
}

func TestOfferService_Update_StoreFailsDropsNewImage(t *testing.T) {
	offers := existingOffer("/uploads/old.png")
	offers.UpsertFunc = func(repositories.SQLExecutor, *models.Offer) error {
		return repositories.ErrDatabaseError
	}
	var removed []string
	images := &FakeImageStore{
		RemoveFunc: func(url string) error {
			removed = append(removed, url)
			return nil
		},
	}
	svc := NewOfferService(offers, royalClubRepo(), images, nil)

	_, err := svc.Update("royal", UpdateOfferRequest{Text: "Free dinner"}, &multipart.FileHeader{Filename: "promo.png"})
	require.ErrorIs(t, err, repositories.ErrDatabaseError)
	assert.Equal(t, []string{"/uploads/new.png"}, removed)
}

func TestOfferService_Update_StoreFailsKeepsCurrentImage(t *testing.T) {
	offers := existingOffer("/uploads/old.png")
	offers.UpsertFunc = func(repositories.SQLExecutor, *models.Offer) error {
		return repositories.ErrDatabaseError
	}
	images := &FakeImageStore{
		RemoveFunc: func(url string) error {
			t.Errorf("unexpected removal of %s", url)
			return nil
		},
	}
	svc := NewOfferService(offers, royalClubRepo(), images, nil)

	_, err := svc.Update("royal", UpdateOfferRequest{Text: "Free dinner"}, nil)
	require.ErrorIs(t, err, repositories.ErrDatabaseError)
}

func TestOfferService_Update_KeepsImageWithoutUpload(t *testing.T) {
	offers := existingOffer("/uploads/old.png")
	images := &FakeImageStore{
		RemoveFunc: func(url string) error {
			t.Fatalf("image %s must be kept", url)
			return nil
		},
	}
	svc := NewOfferService(offers, royalClubRepo(), images, nil)

	offer, err := svc.Update("royal", UpdateOfferRequest{Text: "new text"}, nil)
	require.NoError(t, err)
	require.NotNil(t, offer.ImageURL)
	assert.Equal(t, "/uploads/old.png", *offer.ImageURL)
	assert.Equal(t, "new text", offer.Text)
}

func TestOfferService_Update_NoOffersClears(t *testing.T) {
	offers := existingOffer("/uploads/old.png")
	var removed string
	images := &FakeImageStore{
		SaveFunc: func(*multipart.FileHeader) (string, error) {
			t.Fatal("no image is saved when offers are turned off")
			return "", nil
		},
		RemoveFunc: func(url string) error {
			removed = url
			return nil
		},
	}
	svc := NewOfferService(offers, royalClubRepo(), images, nil)

	offer, err := svc.Update("royal", UpdateOfferRequest{NoOffers: true, Text: "ignored"}, &multipart.FileHeader{})
	require.NoError(t, err)
	assert.True(t, offer.NoOffers)
	assert.Nil(t, offer.ImageURL)
	assert.Empty(t, offer.Text)
	assert.Equal(t, "/uploads/old.png", removed)
}

func TestOfferService_Update_Errors(t *testing.T) {
	t.Run("unknown club", func(t *testing.T) {
		svc := NewOfferService(&FakeOfferRepo{}, royalClubRepo(), &FakeImageStore{}, nil)
		_, err := svc.Update("ghost", UpdateOfferRequest{Text: "x"}, nil)
		assert.ErrorIs(t, err, ErrClubNotFound)
	})

	t.Run("empty offer", func(t *testing.T) {
		svc := NewOfferService(&FakeOfferRepo{}, royalClubRepo(), &FakeImageStore{}, nil)
		_, err := svc.Update("royal", UpdateOfferRequest{Text: "   "}, nil)
		assert.ErrorIs(t, err, ErrOfferValidation)
	})

	t.Run("rejected image", func(t *testing.T) {
		images := &FakeImageStore{
			SaveFunc: func(*multipart.FileHeader) (string, error) { return "", storage.ErrUnsupportedType },
		}
		svc := NewOfferService(&FakeOfferRepo{}, royalClubRepo(), images, nil)
		_, err := svc.Update("royal", UpdateOfferRequest{Text: "x"}, &multipart.FileHeader{})
		assert.ErrorIs(t, err, ErrOfferImage)
	})
}
