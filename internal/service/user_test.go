package service

import (
	"context"
	"strings"
	"testing"

	"github.com/examhub/examhub/internal/dto"
	apperrors "github.com/examhub/examhub/internal/errors"
	"github.com/examhub/examhub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (s *fakeUserStore) GetAll(_ context.Context, limit, offset int, search string) ([]model.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]model.User, 0, len(s.users))
	needle := strings.ToLower(search)
	for _, u := range s.users {
		if u.IsDeleted {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.FirstName), needle) &&
			!strings.Contains(strings.ToLower(u.LastName), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) &&
			!strings.Contains(u.Phone, needle) {
			continue
		}
		matched = append(matched, *u)
	}

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (s *fakeUserStore) Delete(_ context.Context, id uint) error {
	user, err := s.find(func(u *model.User) bool { return u.ID == id && !u.IsDeleted })
	if err != nil {
		return gorm.ErrRecordNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user.IsDeleted = true
	return nil
}

func TestUserService_UpdateProfileNoFields(t *testing.T) {
	store := newFakeUserStore()
	user := activatedUser(t, store, "grace@example.com", "08012345678", "secret123")
	svc := NewUserService(store)

	updated, err := svc.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{})
	require.NoError(t, err)

	// An empty body changes nothing and returns the current row.
	assert.Equal(t, "Grace", updated.FirstName)
	assert.Equal(t, "Hopper", updated.LastName)
	assert.Equal(t, 0, store.updates, "no fields submitted, no write issued")
}

func TestUserService_UpdateProfilePartial(t *testing.T) {
	store := newFakeUserStore()
	user := activatedUser(t, store, "grace@example.com", "08012345678", "secret123")
	svc := NewUserService(store)

	updated, err := svc.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{FirstName: "Ada"})
	require.NoError(t, err)

	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "Hopper", updated.LastName, "absent fields keep their values")
}

func TestUserService_UpdateProfileUnknownUser(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	_, err := svc.UpdateProfile(context.Background(), 99, &dto.UpdateProfileRequest{FirstName: "Ada"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, 404, apperrors.ToHTTPStatus(err))
}

func TestUserService_ListUsersSearch(t *testing.T) {
	store := newFakeUserStore()
	activatedUser(t, store, "grace@example.com", "08011111111", "secret123")
	other := activatedUser(t, store, "alan@example.com", "08022222222", "secret123")
	other.FirstName = "Alan"
	svc := NewUserService(store)

	users, total, err := svc.ListUsers(context.Background(), 10, 0, "alan")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "alan@example.com", users[0].Email)
}

func TestUserService_DeleteUser(t *testing.T) {
	store := newFakeUserStore()
	user := activatedUser(t, store, "grace@example.com", "08012345678", "secret123")
	svc := NewUserService(store)

	status, err := svc.DeleteUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "success", status)

	_, err = svc.GetUser(context.Background(), user.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
