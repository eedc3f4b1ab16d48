package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nidolabs/nido/internal/models"
)

func buildPlainAuthToken(secret []byte, userID uint) (string, error) {
	claims := jwt.MapClaims{"uid": userID, "exp": time.Now().Add(time.Hour).Unix()}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (repo *fakeUserRepo) ExistsByNormalizedEmail(email string) (bool, error) {
	for _, user := range repo.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeUserRepo) FindByNormalizedEmail(email string) (models.User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			return *user, nil
		}
	}
	return models.User{}, errors.New("not found")
}

func (repo *fakeUserRepo) FindByID(userID uint) (models.User, error) {
	user, ok := repo.users[userID]
	if !ok {
		return models.User{}, errors.New("not found")
	}
	return *user, nil
}

func (repo *fakeUserRepo) Create(user *models.User) error {
	user.ID = repo.nextID
	repo.nextID++
	stored := *user
	repo.users[user.ID] = &stored
	return nil
}

func (repo *fakeUserRepo) UpdatePassword(userID uint, passwordHash string) error {
	user, ok := repo.users[userID]
	if !ok {
		return errors.New("not found")
	}
	user.PasswordHash = passwordHash
	return nil
}

func (repo *fakeUserRepo) UpdateDisplayName(userID uint, displayName string) error {
	user, ok := repo.users[userID]
	if !ok {
		return errors.New("not found")
	}
	user.DisplayName = displayName
	return nil
}

func TestRegisterEnforcesPasswordPolicyAndUniqueness(t *testing.T) {
	service := NewAuthService(newFakeUserRepo())

	if _, err := service.Register("parent@example.com", "short", "Sam"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	user, err := service.Register("parent@example.com", "Str0ngPass", "Sam")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.PlanTier != models.PlanTierBasic {
		t.Fatalf("new accounts start on basic, got %s", user.PlanTier)
	}
	if user.PasswordHash == "Str0ngPass" {
		t.Fatal("password must be stored hashed")
	}

	if _, err := service.Register("parent@example.com", "Str0ngPass", "Sam"); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestAuthenticateRejectsWrongPassword(t *testing.T) {
	service := NewAuthService(newFakeUserRepo())
	if _, err := service.Register("parent@example.com", "Str0ngPass", "Sam"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := service.Authenticate("parent@example.com", "WrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Authenticate("nobody@example.com", "Str0ngPass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, err := service.Authenticate("parent@example.com", "Str0ngPass"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
}

func TestPasswordResetTokenRoundTrip(t *testing.T) {
	service := NewAuthService(newFakeUserRepo())
	secret := []byte("test-secret")

	user, err := service.Register("parent@example.com", "Str0ngPass", "Sam")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := service.BuildPasswordResetToken(secret, user.ID, 30*time.Minute)
	if err != nil {
		t.Fatalf("build token: %v", err)
	}

	if _, err := service.ResetPassword(secret, token, "N3wPassword"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if _, err := service.Authenticate("parent@example.com", "N3wPassword"); err != nil {
		t.Fatalf("authenticate with new password: %v", err)
	}

	if _, err := service.ResetPassword([]byte("other-secret"), token, "N3wPassword2"); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("expected ErrInvalidResetToken for wrong secret, got %v", err)
	}

	authToken, err := buildPlainAuthToken(secret, user.ID)
	if err != nil {
		t.Fatalf("build auth-style token: %v", err)
	}
	if _, err := service.ResetPassword(secret, authToken, "N3wPassword3"); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("a token without the reset purpose must be rejected, got %v", err)
	}
}

func TestChangePasswordRequiresCurrentPassword(t *testing.T) {
	service := NewAuthService(newFakeUserRepo())
	user, err := service.Register("parent@example.com", "Str0ngPass", "Sam")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := service.ChangePassword(user.ID, "WrongPass1", "N3wPassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := service.ChangePassword(user.ID, "Str0ngPass", "weak"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if err := service.ChangePassword(user.ID, "Str0ngPass", "N3wPassword"); err != nil {
		t.Fatalf("change password: %v", err)
	}
}
