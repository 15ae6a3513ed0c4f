package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/justsurfingit/habte-job-portal/internal/apperr"
	"github.com/justsurfingit/habte-job-portal/internal/dtos"
	"github.com/justsurfingit/habte-job-portal/internal/models"
)

func TestRegisterLoginAuthenticate(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()

	user, token, err := f.users.Register(ctx, dtos.RegisterRequest{
		Name: "Hana", Email: " Hana@Example.com ", Password: "secret123", Role: models.RoleJobSeeker,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "hana@example.com" {
		t.Errorf("Email = %q, want normalized", user.Email)
	}
	if user.Password == "secret123" {
		t.Error("password stored in clear text")
	}

	got, err := f.users.Authenticate(ctx, token)
	if err != nil || got.ID != user.ID {
		t.Fatalf("Authenticate = %v, %v", got, err)
	}

	_, _, err = f.users.Register(ctx, dtos.RegisterRequest{
		Name: "Hana 2", Email: "HANA@example.com", Password: "x", Role: models.RoleJobSeeker,
	})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("duplicate email: err = %v, want conflict", err)
	}

	if _, _, err := f.users.Login(ctx, dtos.LoginRequest{Email: "hana@example.com", Password: "secret123"}); err != nil {
		t.Errorf("Login: %v", err)
	}
	if _, _, err := f.users.Login(ctx, dtos.LoginRequest{Email: "hana@example.com", Password: "wrong"}); !apperr.Is(err, apperr.KindAuth) {
		t.Errorf("Login(wrong password): err = %v, want auth", err)
	}
	if _, _, err := f.users.Login(ctx, dtos.LoginRequest{Email: "nobody@example.com", Password: "x"}); !apperr.Is(err, apperr.KindAuth) {
		t.Errorf("Login(unknown): err = %v, want auth", err)
	}
	if _, err := f.users.Authenticate(ctx, "not-a-token"); !apperr.Is(err, apperr.KindAuth) {
		t.Errorf("Authenticate(garbage): err = %v, want auth", err)
	}
}

func TestRegister_PasswordTooLong(t *testing.T) {
	f := newFixture(t, time.Hour)
	_, _, err := f.users.Register(context.Background(), dtos.RegisterRequest{
		Name: "L", Email: "long@example.com", Password: strings.Repeat("x", 80), Role: models.RoleJobSeeker,
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	if _, ok := err.(*apperr.Error).Fields["password"]; !ok {
		t.Errorf("fields = %v, want password", err.(*apperr.Error).Fields)
	}
}

func TestRegister_EmployerNeedsCompany(t *testing.T) {
	f := newFixture(t, time.Hour)
	_, _, err := f.users.Register(context.Background(), dtos.RegisterRequest{
		Name: "E", Email: "e@example.com", Password: "x", Role: models.RoleEmployer,
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("err = %v, want validation", err)
	}
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()

	user, token, err := f.users.Register(ctx, dtos.RegisterRequest{
		Name: "Gone", Email: "gone@example.com", Password: "x", Role: models.RoleJobSeeker,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	f.db.Delete(&models.User{}, "id = ?", user.ID)

	if _, err := f.users.Authenticate(ctx, token); !apperr.Is(err, apperr.KindAuth) {
		t.Errorf("err = %v, want auth", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	user := f.register(t, "p@example.com", models.RoleJobSeeker)

	got, err := f.users.UpdateProfile(ctx, user, dtos.ProfileUpdateRequest{
		Location: "Adama",
		Skills:   models.StringList{"Go", "Postgres"},
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.Location != "Adama" || got.Name != "Test User" || len(got.Skills) != 2 {
		t.Errorf("profile = %+v", got)
	}

	got, err = f.users.SetProfileImage(ctx, user, "https://cdn.example.com/p.png")
	if err != nil || got.ProfileImage != "https://cdn.example.com/p.png" {
		t.Errorf("SetProfileImage = %v, %v", got, err)
	}
	if _, err := f.users.SetProfileImage(ctx, user, " "); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("blank image: err = %v, want validation", err)
	}
}
