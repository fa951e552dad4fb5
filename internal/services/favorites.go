package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"stays-backend/internal/models"
)

type ToggleResult string

const (
	FavoriteAdded   ToggleResult = "added"
	FavoriteRemoved ToggleResult = "removed"
)

type FavoritesService struct {
	favorites FavoriteRepository
	now       func() time.Time
}

func NewFavoritesService(favorites FavoriteRepository) *FavoritesService {
	return &FavoritesService{favorites: favorites, now: time.Now}
}

// Toggle removes the favorite when it exists and stores snapshot otherwise.
// The snapshot is kept as given and never refreshed from the property.
func (s *FavoritesService) Toggle(ctx context.Context, userID, propertyID string, snapshot models.FavoriteSnapshot) (ToggleResult, error) {
	userID = strings.TrimSpace(userID)
	propertyID = strings.TrimSpace(propertyID)
	if userID == "" || propertyID == "" {
		return "", invalid("propertyID", "Missing data")
	}

	removed, err := s.favorites.Remove(ctx, userID, propertyID)
	if err != nil {
		return "", err
	}
	if removed {
		return FavoriteRemoved, nil
	}

	favorite := models.Favorite{
		UserID:           userID,
		PropertyID:       propertyID,
		FavoriteSnapshot: snapshot,
		CreatedAt:        s.now(),
	}
	if err := s.favorites.Insert(ctx, &favorite); err != nil {
		// a concurrent toggle already added it
		if mongo.IsDuplicateKeyError(err) {
			return FavoriteAdded, nil
		}
		return "", err
	}
	return FavoriteAdded, nil
}

func (s *FavoritesService) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	id, err := requireListKey("userId", userID)
	if err != nil {
		return nil, err
	}
	return s.favorites.ListByUser(ctx, id)
}
