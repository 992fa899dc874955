package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/GoArmGo/SnapShowdown/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func newIdentityFixture() (*memUserStorage, IdentityUseCase) {
	users := newMemUserStorage()
	uc := NewIdentityUseCase(users, newMemFileStorage(), testLogger())
	return users, uc
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates participant with hashed password", func(t *testing.T) {
		_, uc := newIdentityFixture()

		user, err := uc.Register(ctx, "ann@example.com", "ann", "password123", domain.RoleParticipant)
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if user.Role != domain.RoleParticipant {
			t.Errorf("role = %s, want participant", user.Role)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")); err != nil {
			t.Error("stored hash does not match the password")
		}
	})

	t.Run("admin role is coerced to participant", func(t *testing.T) {
		_, uc := newIdentityFixture()

		user, err := uc.Register(ctx, "eve@example.com", "eve", "password123", domain.RoleAdmin)
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if user.Role != domain.RoleParticipant {
			t.Errorf("role = %s, want participant", user.Role)
		}
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		_, uc := newIdentityFixture()

		if _, err := uc.Register(ctx, "ann@example.com", "ann", "password123", domain.RoleVoter); err != nil {
			t.Fatalf("first Register: %v", err)
		}
		_, err := uc.Register(ctx, "ann@example.com", "ann2", "password123", domain.RoleVoter)
		if !errors.Is(err, domain.ErrConflict) {
			t.Errorf("err = %v, want ErrConflict", err)
		}
	})

	t.Run("validates input", func(t *testing.T) {
		_, uc := newIdentityFixture()

		cases := []struct {
			name     string
			email    string
			username string
			password string
		}{
			{"bad email", "not-an-email", "ann", "password123"},
			{"empty username", "ann@example.com", "  ", "password123"},
			{"short password", "ann@example.com", "ann", "short"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := uc.Register(ctx, tc.email, tc.username, tc.password, domain.RoleVoter)
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("err = %v, want ErrValidation", err)
				}
			})
		}
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	_, uc := newIdentityFixture()

	if _, err := uc.Register(ctx, "ann@example.com", "ann", "password123", domain.RoleVoter); err != nil {
		t.Fatalf("Register: %v", err)
	}

	t.Run("valid credentials succeed", func(t *testing.T) {
		user, err := uc.Authenticate(ctx, "ann@example.com", "password123")
		if err != nil {
			t.Fatalf("Authenticate: %v", err)
		}
		if user.Username != "ann" {
			t.Errorf("username = %q, want ann", user.Username)
		}
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		_, errWrongPass := uc.Authenticate(ctx, "ann@example.com", "wrong-password")
		_, errUnknown := uc.Authenticate(ctx, "ghost@example.com", "password123")

		if !errors.Is(errWrongPass, domain.ErrForbidden) || !errors.Is(errUnknown, domain.ErrForbidden) {
			t.Fatalf("errs = %v / %v, want ErrForbidden for both", errWrongPass, errUnknown)
		}
		if errWrongPass.Error() != errUnknown.Error() {
			t.Error("error messages differ, leaking whether the email exists")
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("updates username and bio", func(t *testing.T) {
		_, uc := newIdentityFixture()
		user, _ := uc.Register(ctx, "ann@example.com", "ann", "password123", domain.RoleVoter)

		updated, err := uc.UpdateProfile(ctx, user.ID, "annie", "hello")
		if err != nil {
			t.Fatalf("UpdateProfile: %v", err)
		}
		if updated.Username != "annie" || updated.Bio != "hello" {
			t.Errorf("got %q / %q", updated.Username, updated.Bio)
		}
	})

	t.Run("taken username is a conflict", func(t *testing.T) {
		_, uc := newIdentityFixture()
		_, _ = uc.Register(ctx, "ann@example.com", "ann", "password123", domain.RoleVoter)
		bob, _ := uc.Register(ctx, "bob@example.com", "bob", "password123", domain.RoleVoter)

		_, err := uc.UpdateProfile(ctx, bob.ID, "ann", "")
		if !errors.Is(err, domain.ErrConflict) {
			t.Errorf("err = %v, want ErrConflict", err)
		}
	})

	t.Run("keeping own username is fine", func(t *testing.T) {
		_, uc := newIdentityFixture()
		user, _ := uc.Register(ctx, "ann@example.com", "ann", "password123", domain.RoleVoter)

		if _, err := uc.UpdateProfile(ctx, user.ID, "ann", "new bio"); err != nil {
			t.Fatalf("UpdateProfile: %v", err)
		}
	})
}

func TestUpdateProfilePicture(t *testing.T) {
	ctx := context.Background()
	users := newMemUserStorage()
	files := newMemFileStorage()
	uc := NewIdentityUseCase(users, files, testLogger())
	user, _ := uc.Register(ctx, "ann@example.com", "ann", "password123", domain.RoleVoter)

	updated, err := uc.UpdateProfilePicture(ctx, user.ID, fileReader(), "me.png", "image/png")
	if err != nil {
		t.Fatalf("UpdateProfilePicture: %v", err)
	}
	if updated.ProfilePicture == "default.jpg" {
		t.Error("profile picture key was not replaced")
	}

	if _, err := uc.UpdateProfilePicture(ctx, user.ID, fileReader(), "me.svg", "image/svg+xml"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation for svg", err)
	}

	t.Run("replacing the picture removes the old file", func(t *testing.T) {
		first := updated.ProfilePicture
		again, err := uc.UpdateProfilePicture(ctx, user.ID, fileReader(), "new.jpg", "image/jpeg")
		if err != nil {
			t.Fatalf("second UpdateProfilePicture: %v", err)
		}
		if _, ok := files.files[first]; ok {
			t.Errorf("old picture %q still stored", first)
		}
		if _, ok := files.files[again.ProfilePicture]; !ok {
			t.Errorf("new picture %q not stored", again.ProfilePicture)
		}
	})
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds a working admin account", func(t *testing.T) {
		_, uc := newIdentityFixture()

		if err := uc.EnsureAdmin(ctx, "admin@example.com", "changeme123"); err != nil {
			t.Fatalf("EnsureAdmin: %v", err)
		}

		admin, err := uc.Authenticate(ctx, "admin@example.com", "changeme123")
		if err != nil {
			t.Fatalf("seeded admin cannot authenticate: %v", err)
		}
		if admin.Role != domain.RoleAdmin {
			t.Errorf("role = %s, want admin", admin.Role)
		}
	})

	t.Run("is idempotent across restarts", func(t *testing.T) {
		users, uc := newIdentityFixture()

		if err := uc.EnsureAdmin(ctx, "admin@example.com", "changeme123"); err != nil {
			t.Fatalf("first EnsureAdmin: %v", err)
		}
		if err := uc.EnsureAdmin(ctx, "admin@example.com", "rotated-later"); err != nil {
			t.Fatalf("second EnsureAdmin: %v", err)
		}
		if len(users.users) != 1 {
			t.Errorf("users = %d, want 1", len(users.users))
		}
		// The existing account, and its possibly rotated password, stay
		// untouched.
		if _, err := uc.Authenticate(ctx, "admin@example.com", "changeme123"); err != nil {
			t.Errorf("original password no longer works: %v", err)
		}
	})
}
