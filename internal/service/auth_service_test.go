package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"linguastory-backend/internal/model"
)

type fakeUserRepo struct {
	byEmail map[string]*model.User
	nextID  uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*model.User)}
}

func (r *fakeUserRepo) CreateUser(user *model.User) error {
	r.nextID++
	user.ID = r.nextID
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*model.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*model.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	user := &model.User{Username: "sara", Email: "sara@example.com", Password: "s3cret"}
	require.NoError(t, svc.Register(user))

	stored := repo.byEmail["sara@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret")))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	first := &model.User{Email: "a@example.com", Password: "pw"}
	require.NoError(t, svc.Register(first))

	err := svc.Register(&model.User{Email: "a@example.com", Password: "pw"})
	assert.EqualError(t, err, "email already in use")
}

func TestRegisterRejectsEmptyPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	err := svc.Register(&model.User{Email: "b@example.com"})
	assert.EqualError(t, err, "password cannot be empty")
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	require.NoError(t, svc.Register(&model.User{Username: "omar", Email: "omar@example.com", Password: "pw123"}))

	user, err := svc.Login("omar@example.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "omar", user.Username)
	assert.Empty(t, user.Password, "password hash must not leak")

	_, err = svc.Login("omar@example.com", "wrong")
	assert.EqualError(t, err, "invalid credentials")

	_, err = svc.Login("ghost@example.com", "pw123")
	assert.EqualError(t, err, "user not found")
}
