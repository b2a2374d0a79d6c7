package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/luislong0/daily-diet-api/models"
	"github.com/luislong0/daily-diet-api/store"
	"github.com/luislong0/daily-diet-api/utils"
)

type UserService struct {
	store  store.Store
	photos utils.PhotoUploader
	now    func() time.Time
}

// NewUserService builds the user service. photos may be nil, in which case
// photo URLs are stored exactly as sent.
func NewUserService(st store.Store, photos utils.PhotoUploader) *UserService {
	return &UserService{store: st, photos: photos, now: time.Now}
}

// Postgres keeps microseconds; timestamps are cut to that so responses
// match later reads.
func storeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

type CreateUserInput struct {
	Name     string
	Bio      string
	PhotoURL string
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	if !isUUID(id) {
		return nil, ErrUserNotFound
	}
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Create inserts a user in a single statement; the unique index on name
// decides duplicates so concurrent creates cannot both succeed. An uploaded
// photo is removed again when the insert fails.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	user := &models.User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Bio:       in.Bio,
		PhotoURL:  in.PhotoURL,
		CreatedAt: storeTime(s.now()),
	}

	uploaded := false
	if s.photos != nil && utils.IsDataURI(in.PhotoURL) {
		url, err := s.photos.Upload(ctx, in.PhotoURL, "users/"+user.ID)
		if err != nil {
			return nil, fmt.Errorf("upload photo: %w", err)
		}
		user.PhotoURL = url
		uploaded = true
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if uploaded {
			if rmErr := s.photos.Remove(ctx, user.PhotoURL); rmErr != nil {
				utils.LoggerFromContext(ctx).Warn("orphaned photo not removed",
					"url", user.PhotoURL, "error", rmErr)
			}
		}
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrUserNameTaken
		}
		return nil, err
	}
	utils.LoggerFromContext(ctx).Info("user created", "user_id", user.ID)
	return user, nil
}

// Postgres rejects non-UUID input for uuid columns; such an id can never match.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
