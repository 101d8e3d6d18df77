package service

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/examhub/examhub/internal/constants"
	"github.com/examhub/examhub/internal/dto"
	apperrors "github.com/examhub/examhub/internal/errors"
	"github.com/examhub/examhub/internal/model"
	"github.com/examhub/examhub/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	os.Exit(m.Run())
}

// fakeUserStore is an in-memory AuthUserStore. UpdateFields applies the same
// column names the real repository writes.
type fakeUserStore struct {
	mu      sync.Mutex
	users   []*model.User
	nextID  uint
	updates int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1}
}

func (s *fakeUserStore) add(user *model.User) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == 0 {
		user.ID = s.nextID
		s.nextID++
	}
	s.users = append(s.users, user)
	return user
}

func (s *fakeUserStore) find(match func(*model.User) bool) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.ID == id && !u.IsDeleted })
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.Email == email && !u.IsDeleted })
}

func (s *fakeUserStore) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.Phone == phone && !u.IsDeleted })
}

func (s *fakeUserStore) GetByActivationCode(_ context.Context, code string) (*model.User, error) {
	return s.find(func(u *model.User) bool {
		return u.ActivationCode != nil && *u.ActivationCode == code
	})
}

func (s *fakeUserStore) GetByResetCode(_ context.Context, code string) (*model.User, error) {
	return s.find(func(u *model.User) bool {
		return u.ResetPassword != nil && *u.ResetPassword == code && !u.IsUsedPassword
	})
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error {
	s.add(user)
	return nil
}

func (s *fakeUserStore) UpdateFields(_ context.Context, id uint, fields map[string]interface{}) error {
	user, err := s.find(func(u *model.User) bool { return u.ID == id })
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	for key, value := range fields {
		switch key {
		case "is_activated":
			user.IsActivated = value.(bool)
		case "is_used_password":
			user.IsUsedPassword = value.(bool)
		case "activation_code":
			user.ActivationCode = optionalString(value)
		case "reset_password":
			user.ResetPassword = optionalString(value)
		case "password_expire":
			if value == nil {
				user.PasswordExpire = nil
			} else {
				expire := value.(int64)
				user.PasswordExpire = &expire
			}
		case "password":
			user.Password = value.(string)
		case "avatar":
			avatar := value.(string)
			user.Avatar = &avatar
		case "first_name":
			user.FirstName = value.(string)
		case "last_name":
			user.LastName = value.(string)
		}
	}
	return nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id uint, hashedPassword string) error {
	return s.UpdateFields(context.Background(), id, map[string]interface{}{"password": hashedPassword})
}

func optionalString(value interface{}) *string {
	if value == nil {
		return nil
	}
	str := value.(string)
	return &str
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []string
	ready chan struct{}
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{ready: make(chan struct{}, 16)}
}

func (m *fakeMailer) Send(emailType string, _ *model.User) error {
	m.mu.Lock()
	m.sent = append(m.sent, emailType)
	m.mu.Unlock()
	m.ready <- struct{}{}
	return nil
}

// waitFor blocks until one email has been delivered or the timeout fires.
func (m *fakeMailer) waitFor(t *testing.T) string {
	t.Helper()
	select {
	case <-m.ready:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for email")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

type fakeUploader struct {
	url string
	err error
}

func (u *fakeUploader) UploadBytes(_ context.Context, _, _ string, _ []byte) (string, error) {
	return u.url, u.err
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(hashed)
}

func newTestAuthService(store AuthUserStore, mail Mailer, upload Uploader) AuthService {
	return NewAuthService(store, NewJWTService("test-secret", time.Hour), mail, upload, time.Minute)
}

func activatedUser(t *testing.T, store *fakeUserStore, email, phone, password string) *model.User {
	t.Helper()
	return store.add(&model.User{
		FirstName:   "Grace",
		LastName:    "Hopper",
		Email:       email,
		Phone:       phone,
		Password:    hashPassword(t, password),
		IsActivated: true,
		Role:        constants.RoleUser,
	})
}

func TestAuthService_Register(t *testing.T) {
	store := newFakeUserStore()
	mail := newFakeMailer()
	svc := newTestAuthService(store, mail, nil)

	req := &dto.RegisterRequest{
		FirstName:       "Grace",
		LastName:        "Hopper",
		Email:           "grace@example.com",
		Phone:           "08012345678",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}

	user, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, constants.RoleUser, user.Role)
	assert.False(t, user.IsActivated)
	require.NotNil(t, user.ActivationCode)
	assert.NotEmpty(t, *user.ActivationCode)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")

	assert.Equal(t, constants.EmailWelcome, mail.waitFor(t))
}

func TestAuthService_RegisterConflicts(t *testing.T) {
	tests := []struct {
		name    string
		seed    func(t *testing.T, store *fakeUserStore)
		email   string
		phone   string
		wantErr error
	}{
		{
			name: "existing unverified email",
			seed: func(t *testing.T, store *fakeUserStore) {
				code := "pending-code"
				store.add(&model.User{
					Email:          "taken@example.com",
					Phone:          "08011111111",
					Password:       hashPassword(t, "secret123"),
					ActivationCode: &code,
				})
			},
			email:   "taken@example.com",
			phone:   "08022222222",
			wantErr: apperrors.ErrEmailExistsUnverified,
		},
		{
			name: "existing activated email",
			seed: func(t *testing.T, store *fakeUserStore) {
				activatedUser(t, store, "taken@example.com", "08011111111", "secret123")
			},
			email:   "taken@example.com",
			phone:   "08022222222",
			wantErr: apperrors.ErrEmailExists,
		},
		{
			name: "existing phone",
			seed: func(t *testing.T, store *fakeUserStore) {
				activatedUser(t, store, "other@example.com", "08011111111", "secret123")
			},
			email:   "fresh@example.com",
			phone:   "08011111111",
			wantErr: apperrors.ErrPhoneExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeUserStore()
			tt.seed(t, store)
			svc := newTestAuthService(store, nil, nil)

			_, err := svc.Register(context.Background(), &dto.RegisterRequest{
				FirstName:       "Grace",
				LastName:        "Hopper",
				Email:           tt.email,
				Phone:           tt.phone,
				Password:        "secret123",
				ConfirmPassword: "secret123",
			})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 400, apperrors.ToHTTPStatus(err))
		})
	}
}

// conflictOnCreateStore simulates a registration losing a race: the
// pre-checks see an empty store, then the insert hits a unique index.
type conflictOnCreateStore struct {
	*fakeUserStore
	conflict *model.User
}

func (s *conflictOnCreateStore) Create(_ context.Context, _ *model.User) error {
	s.fakeUserStore.add(s.conflict)
	return gorm.ErrDuplicatedKey
}

func TestAuthService_RegisterDuplicateKeyRace(t *testing.T) {
	tests := []struct {
		name     string
		conflict *model.User
		wantErr  error
	}{
		{
			name: "lost email race",
			conflict: &model.User{
				Email:       "grace@example.com",
				Phone:       "08099999999",
				IsActivated: true,
			},
			wantErr: apperrors.ErrEmailExists,
		},
		{
			name: "lost phone race",
			conflict: &model.User{
				Email:       "other@example.com",
				Phone:       "08012345678",
				IsActivated: true,
			},
			wantErr: apperrors.ErrPhoneExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &conflictOnCreateStore{fakeUserStore: newFakeUserStore(), conflict: tt.conflict}
			svc := newTestAuthService(store, nil, nil)

			_, err := svc.Register(context.Background(), &dto.RegisterRequest{
				FirstName:       "Grace",
				LastName:        "Hopper",
				Email:           "grace@example.com",
				Phone:           "08012345678",
				Password:        "secret123",
				ConfirmPassword: "secret123",
			})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 400, apperrors.ToHTTPStatus(err))
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	store := newFakeUserStore()
	activatedUser(t, store, "grace@example.com", "08012345678", "secret123")
	svc := newTestAuthService(store, nil, nil)

	user, token, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "grace@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)
}

func TestAuthService_LoginFailures(t *testing.T) {
	store := newFakeUserStore()
	activatedUser(t, store, "grace@example.com", "08012345678", "secret123")
	store.add(&model.User{
		Email:    "pending@example.com",
		Phone:    "08099999999",
		Password: hashPassword(t, "secret123"),
	})
	svc := newTestAuthService(store, nil, nil)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"unknown email", "nobody@example.com", "secret123", apperrors.ErrInvalidCredentials},
		{"wrong password", "grace@example.com", "wrong-pass", apperrors.ErrInvalidCredentials},
		{"not activated", "pending@example.com", "secret123", apperrors.ErrNotActivated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), &dto.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 401, apperrors.ToHTTPStatus(err))
		})
	}
}

func TestAuthService_Activate(t *testing.T) {
	store := newFakeUserStore()
	code := "activation-code-1234"
	store.add(&model.User{
		Email:          "pending@example.com",
		Phone:          "08012345678",
		Password:       hashPassword(t, "secret123"),
		ActivationCode: &code,
	})
	svc := newTestAuthService(store, nil, nil)

	user, err := svc.Activate(context.Background(), code)
	require.NoError(t, err)
	assert.True(t, user.IsActivated)
	assert.True(t, user.IsUsedPassword)
	assert.Nil(t, user.ActivationCode)

	// The code is cleared on first use, a replay must fail
	_, err = svc.Activate(context.Background(), code)
	require.ErrorIs(t, err, apperrors.ErrForbiddenAttempt)
	assert.Equal(t, 403, apperrors.ToHTTPStatus(err))
}

func TestAuthService_ActivateUnknownCode(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), nil, nil)

	_, err := svc.Activate(context.Background(), "no-such-code")
	require.ErrorIs(t, err, apperrors.ErrForbiddenAttempt)
}

func TestAuthService_Forget(t *testing.T) {
	store := newFakeUserStore()
	user := activatedUser(t, store, "grace@example.com", "08012345678", "secret123")
	svc := newTestAuthService(store, nil, nil)

	status, err := svc.Forget(context.Background(), "grace@example.com")
	require.NoError(t, err)
	assert.Equal(t, "success", status)

	require.NotNil(t, user.ResetPassword)
	assert.False(t, user.IsUsedPassword)
	require.NotNil(t, user.PasswordExpire)
	assert.Greater(t, *user.PasswordExpire, time.Now().UnixMilli())
}

func TestAuthService_ForgetUnknownEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), nil, nil)

	_, err := svc.Forget(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, apperrors.ErrForbiddenAttempt)
}

func TestAuthService_ActivateResetPassword(t *testing.T) {
	store := newFakeUserStore()
	user := activatedUser(t, store, "grace@example.com", "08012345678", "secret123")
	code := "reset-code-1234"
	expire := time.Now().Add(time.Minute).UnixMilli()
	user.ResetPassword = &code
	user.PasswordExpire = &expire
	svc := newTestAuthService(store, nil, nil)

	redeemed, token, err := svc.ActivateResetPassword(context.Background(), code)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, redeemed.IsUsedPassword)
	assert.Nil(t, redeemed.ResetPassword)

	// Redeeming marks the code used, a second attempt must fail
	_, _, err = svc.ActivateResetPassword(context.Background(), code)
	require.ErrorIs(t, err, apperrors.ErrForbiddenAttempt)
}

func TestAuthService_ActivateResetPasswordExpired(t *testing.T) {
	store := newFakeUserStore()
	user := activatedUser(t, store, "grace@example.com", "08012345678", "secret123")
	code := "reset-code-1234"
	expire := time.Now().Add(-time.Minute).UnixMilli()
	user.ResetPassword = &code
	user.PasswordExpire = &expire
	svc := newTestAuthService(store, nil, nil)

	_, _, err := svc.ActivateResetPassword(context.Background(), code)
	require.ErrorIs(t, err, apperrors.ErrForbiddenAttempt)
}

func TestAuthService_ResetPassword(t *testing.T) {
	store := newFakeUserStore()
	mail := newFakeMailer()
	user := activatedUser(t, store, "grace@example.com", "08012345678", "secret123")
	code := "reset-code"
	user.ResetPassword = &code
	user.IsUsedPassword = true
	svc := newTestAuthService(store, mail, nil)

	status, err := svc.ResetPassword(context.Background(), user.ID, "brand-new-pass")
	require.NoError(t, err)
	assert.Equal(t, "success", status)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("brand-new-pass")))
	assert.True(t, user.IsUsedPassword)
	assert.Nil(t, user.ResetPassword)
	assert.Equal(t, constants.EmailResetSuccessfully, mail.waitFor(t))
}

func TestAuthService_ResetPasswordNotActivated(t *testing.T) {
	store := newFakeUserStore()
	user := store.add(&model.User{
		Email:    "pending@example.com",
		Phone:    "08012345678",
		Password: hashPassword(t, "secret123"),
	})
	svc := newTestAuthService(store, nil, nil)

	_, err := svc.ResetPassword(context.Background(), user.ID, "brand-new-pass")
	require.ErrorIs(t, err, apperrors.ErrNotActivated)
}

func TestAuthService_ResetPasswordUnknownUser(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), nil, nil)

	_, err := svc.ResetPassword(context.Background(), 99, "brand-new-pass")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, 404, apperrors.ToHTTPStatus(err))
}

func TestAuthService_ChangePassword(t *testing.T) {
	store := newFakeUserStore()
	user := activatedUser(t, store, "grace@example.com", "08012345678", "secret123")
	svc := newTestAuthService(store, nil, nil)

	status, err := svc.ChangePassword(context.Background(), user.ID, "secret123", "brand-new-pass")
	require.NoError(t, err)
	assert.Equal(t, "success", status)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("brand-new-pass")))
}

func TestAuthService_ChangePasswordKeepsResetState(t *testing.T) {
	store := newFakeUserStore()
	user := activatedUser(t, store, "grace@example.com", "08012345678", "secret123")
	code := "2c9a9a2e-23a0-4f2e-9b0a-0d6a2b9c6f11"
	user.ResetPassword = &code
	svc := newTestAuthService(store, nil, nil)

	_, err := svc.ChangePassword(context.Background(), user.ID, "secret123", "brand-new-pass")
	require.NoError(t, err)

	// Only the hash changes; a pending reset code is untouched.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("brand-new-pass")))
	require.NotNil(t, user.ResetPassword)
	assert.Equal(t, code, *user.ResetPassword)
	assert.False(t, user.IsUsedPassword)
}

func TestAuthService_ChangePasswordWrongOld(t *testing.T) {
	store := newFakeUserStore()
	user := activatedUser(t, store, "grace@example.com", "08012345678", "secret123")
	svc := newTestAuthService(store, nil, nil)

	_, err := svc.ChangePassword(context.Background(), user.ID, "wrong-old", "brand-new-pass")
	require.ErrorIs(t, err, apperrors.ErrInvalidOldPassword)
	assert.Equal(t, 422, apperrors.ToHTTPStatus(err))
}

func TestAuthService_UploadAvatar(t *testing.T) {
	store := newFakeUserStore()
	user := activatedUser(t, store, "grace@example.com", "08012345678", "secret123")
	svc := newTestAuthService(store, nil, &fakeUploader{url: "https://cdn.example.com/avatars/1.png"})

	updated, err := svc.UploadAvatar(context.Background(), user.ID, "me.png", []byte{0x89, 0x50})
	require.NoError(t, err)
	require.NotNil(t, updated.Avatar)
	assert.Equal(t, "https://cdn.example.com/avatars/1.png", *updated.Avatar)
}

func TestAuthService_UploadAvatarFailure(t *testing.T) {
	store := newFakeUserStore()
	user := activatedUser(t, store, "grace@example.com", "08012345678", "secret123")
	svc := newTestAuthService(store, nil, &fakeUploader{err: context.DeadlineExceeded})

	_, err := svc.UploadAvatar(context.Background(), user.ID, "me.png", []byte{0x89, 0x50})
	require.Error(t, err)
	domainErr := apperrors.GetDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, apperrors.CodeUploadFailed, domainErr.Code)
	assert.Equal(t, 422, apperrors.ToHTTPStatus(err))
}

func TestAuthService_UploadAvatarNoUploader(t *testing.T) {
	store := newFakeUserStore()
	user := activatedUser(t, store, "grace@example.com", "08012345678", "secret123")
	svc := newTestAuthService(store, nil, nil)

	_, err := svc.UploadAvatar(context.Background(), user.ID, "me.png", []byte{0x89, 0x50})
	require.ErrorIs(t, err, apperrors.ErrUploadFailed)
}
