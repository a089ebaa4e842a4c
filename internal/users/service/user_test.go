package service

import (
	"context"
	"os"
	"testing"

	userserrors "rentacab/internal/users/errors"
	"rentacab/internal/users/validator"
	"rentacab/pkg/config"
	apperrors "rentacab/pkg/errors"
	"rentacab/pkg/logger"
	"rentacab/pkg/model"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *model.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	FindByIDFunc    func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Level: "error", Format: "text", Output: os.Stderr, Service: "test"}),
	}
}

func newTestService(repo *mockUserRepository) UserService {
	cfg := testConfig()
	return NewUserService(repo, validator.NewUserValidator(cfg.Log), cfg)
}

func validRegistration() *model.Registration {
	return &model.Registration{
		Name:         "Asha Verma",
		Email:        "Asha.Verma@Example.com",
		Password:     "s3cret-password",
		MobileNumber: "+919876543210",
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	var created *model.User
	repo := &mockUserRepository{
		CreateFunc: func(ctx context.Context, user *model.User) error {
			created = user
			return nil
		},
	}

	svc := newTestService(repo)

	user, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil {
		t.Fatal("expected user to be persisted")
	}
	if user.ID == "" {
		t.Error("expected generated user ID")
	}
	if user.Email != "asha.verma@example.com" {
		t.Errorf("expected lowercased email, got %s", user.Email)
	}
	if user.PasswordHash == "s3cret-password" {
		t.Fatal("password stored in cleartext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-password")); err != nil {
		t.Errorf("stored hash does not verify the password: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		CreateFunc: func(ctx context.Context, user *model.User) error {
			return userserrors.ErrDuplicateEmail
		},
	}

	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), validRegistration())
	if err == nil {
		t.Fatal("expected error for duplicate email")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict, got %s", appErr.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	repo := &mockUserRepository{
		CreateFunc: func(ctx context.Context, user *model.User) error {
			t.Fatal("repository should not be called on validation failure")
			return nil
		},
	}

	svc := newTestService(repo)

	tests := []struct {
		name   string
		mutate func(*model.Registration)
	}{
		{"short password", func(r *model.Registration) { r.Password = "short" }},
		{"bad email", func(r *model.Registration) { r.Email = "not-an-email" }},
		{"missing name", func(r *model.Registration) { r.Name = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := validRegistration()
			tt.mutate(reg)

			_, err := svc.Register(context.Background(), reg)
			if err == nil {
				t.Fatal("expected validation error")
			}

			appErr := apperrors.AsAppError(err)
			if appErr.Code != apperrors.CodeValidation {
				t.Errorf("expected validation error, got %s", appErr.Code)
			}
		})
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			if email != "asha.verma@example.com" {
				t.Errorf("expected normalized email lookup, got %s", email)
			}
			return &model.User{ID: "u-1", Email: email, PasswordHash: string(hash)}, nil
		},
	}

	svc := newTestService(repo)

	user, err := svc.Authenticate(context.Background(), &model.Credentials{
		Email:    "Asha.Verma@Example.com",
		Password: "s3cret-password",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "u-1" {
		t.Errorf("expected user u-1, got %s", user.ID)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)

	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "u-1", Email: email, PasswordHash: string(hash)}, nil
		},
	}

	svc := newTestService(repo)

	_, err := svc.Authenticate(context.Background(), &model.Credentials{
		Email:    "asha.verma@example.com",
		Password: "wrong-password",
	})
	if err == nil {
		t.Fatal("expected error for wrong password")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeUnauthorized {
		t.Errorf("expected unauthorized, got %s", appErr.Code)
	}
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return nil, userserrors.ErrNotFound
		},
	}

	svc := newTestService(repo)

	_, err := svc.Authenticate(context.Background(), &model.Credentials{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	if err == nil {
		t.Fatal("expected error for unknown email")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeUnauthorized {
		t.Errorf("expected unauthorized, got %s", appErr.Code)
	}
	if appErr.Message != "Invalid email or password" {
		t.Errorf("unknown email must produce the generic message, got %q", appErr.Message)
	}
}
