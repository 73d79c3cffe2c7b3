package service

import (
	"ai_interview_backend/internal/config"
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/util"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserStore struct {
	nextID  uint
	byEmail map[string]*model.User
	byID    map[uint]*model.User
	findErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		nextID:  1,
		byEmail: make(map[string]*model.User),
		byID:    make(map[uint]*model.User),
	}
}

func (f *fakeUserStore) Create(user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	cp := *user
	f.byEmail[user.Email] = &cp
	f.byID[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) FindByID(id uint) (*model.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) FindByEmail(email string) (*model.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) Update(user *model.User) error {
	cp := *user
	f.byEmail[user.Email] = &cp
	f.byID[user.ID] = &cp
	return nil
}

func newTestAuthService(store UserStore) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(store, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)

	user := &model.User{Email: "kim@example.com", Password: "pass-word-1", Name: "김철수"}
	require.NoError(t, svc.Register(user))

	// The stored password is a bcrypt hash, never the plaintext.
	stored := store.byEmail["kim@example.com"]
	assert.NotEqual(t, "pass-word-1", stored.Password)

	token, err := svc.Login("kim@example.com", "pass-word-1")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)

	require.NoError(t, svc.Register(&model.User{Email: "kim@example.com", Password: "pass-word-1"}))
	err := svc.Register(&model.User{Email: "kim@example.com", Password: "other-pass"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginInvalidCredentials(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	require.NoError(t, svc.Register(&model.User{Email: "kim@example.com", Password: "pass-word-1"}))

	_, err := svc.Login("kim@example.com", "wrong-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "pass-word-1")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

// An infrastructure failure must surface as-is, not masquerade as a bad
// password.
func TestLoginStoreErrorIsNotInvalidCredentials(t *testing.T) {
	store := newFakeUserStore()
	store.findErr = errors.New("connection refused")
	svc := newTestAuthService(store)

	_, err := svc.Login("kim@example.com", "pass-word-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, util.ErrInvalidCredentials)
	assert.EqualError(t, err, "connection refused")
}
