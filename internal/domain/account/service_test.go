package account

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// -- Mock Repository --

type mockUserRepo struct {
	store map[uuid.UUID]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{store: make(map[uuid.UUID]*User)}
}

func (m *mockUserRepo) usernameInUse(username string, excludeID uuid.UUID) bool {
	for _, u := range m.store {
		if strings.EqualFold(u.Username, username) && u.ID != excludeID {
			return true
		}
	}
	return false
}

func (m *mockUserRepo) Create(_ context.Context, u *User) error {
	if m.usernameInUse(u.Username, uuid.Nil) {
		return ErrUsernameTaken
	}
	u.ID = uuid.New()
	m.store[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range m.store {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, u *User) error {
	if _, ok := m.store[u.ID]; !ok {
		return ErrNotFound
	}
	if m.usernameInUse(u.Username, u.ID) {
		return ErrUsernameTaken
	}
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := m.store[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *mockUserRepo) UsernameTaken(_ context.Context, username string, excludeID uuid.UUID) (bool, error) {
	return m.usernameInUse(username, excludeID), nil
}

func (m *mockUserRepo) Count(_ context.Context) (int, error) {
	return len(m.store), nil
}

func seededService(t *testing.T) (*Service, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo()
	svc := NewService(repo)
	if err := svc.EnsureSeed(context.Background()); err != nil {
		t.Fatalf("EnsureSeed() error: %v", err)
	}
	return svc, repo
}

// -- Service Tests --

func TestEnsureSeed_CreatesDefaultUser(t *testing.T) {
	svc, repo := seededService(t)

	if len(repo.store) != 1 {
		t.Fatalf("expected 1 user after seed, got %d", len(repo.store))
	}

	u, err := repo.GetByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("expected seeded admin user: %v", err)
	}
	if u.Name != "BHW Maria" {
		t.Errorf("expected name BHW Maria, got %s", u.Name)
	}
	if u.Role != "Barangay Health Worker" {
		t.Errorf("expected default role, got %s", u.Role)
	}
	if u.PasswordHash == "password123" {
		t.Error("expected password to be stored hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) != nil {
		t.Error("expected seeded hash to verify against the default password")
	}

	// Second call is a no-op
	if err := svc.EnsureSeed(context.Background()); err != nil {
		t.Fatalf("second EnsureSeed() error: %v", err)
	}
	if len(repo.store) != 1 {
		t.Errorf("expected seed to be idempotent, got %d users", len(repo.store))
	}
}

func TestLogin_Success(t *testing.T) {
	svc, _ := seededService(t)

	u, err := svc.Login(context.Background(), "admin", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Username != "admin" {
		t.Errorf("expected admin, got %s", u.Username)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := seededService(t)

	_, err := svc.Login(context.Background(), "admin", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	svc, _ := seededService(t)

	_, err := svc.Login(context.Background(), "nobody", "password123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestLogin_EmptyInputs(t *testing.T) {
	svc, _ := seededService(t)

	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRecoveryQuestion(t *testing.T) {
	svc, _ := seededService(t)

	q, err := svc.RecoveryQuestion(context.Background(), "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q != "What is your favorite color?" {
		t.Errorf("unexpected question: %s", q)
	}

	_, err = svc.RecoveryQuestion(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResetPassword_Success(t *testing.T) {
	svc, _ := seededService(t)

	if err := svc.ResetPassword(context.Background(), "admin", "emerald", "newpass456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Login(context.Background(), "admin", "newpass456"); err != nil {
		t.Errorf("expected login with new password to work: %v", err)
	}
	if _, err := svc.Login(context.Background(), "admin", "password123"); err == nil {
		t.Error("expected old password to stop working")
	}
}

func TestResetPassword_AnswerIsCaseInsensitive(t *testing.T) {
	svc, _ := seededService(t)

	if err := svc.ResetPassword(context.Background(), "admin", "  EMERALD ", "newpass456"); err != nil {
		t.Errorf("expected case-insensitive answer match, got %v", err)
	}
}

func TestResetPassword_WrongAnswer(t *testing.T) {
	svc, _ := seededService(t)

	err := svc.ResetPassword(context.Background(), "admin", "ruby", "newpass456")
	if !errors.Is(err, ErrWrongAnswer) {
		t.Errorf("expected ErrWrongAnswer, got %v", err)
	}

	// Password unchanged
	if _, err := svc.Login(context.Background(), "admin", "password123"); err != nil {
		t.Errorf("expected original password to keep working: %v", err)
	}
}

func TestResetPassword_ShortPassword(t *testing.T) {
	svc, _ := seededService(t)

	if err := svc.ResetPassword(context.Background(), "admin", "emerald", "abc"); err == nil {
		t.Error("expected error for short password")
	}
}

func TestResetPassword_UnknownUser(t *testing.T) {
	svc, _ := seededService(t)

	err := svc.ResetPassword(context.Background(), "nobody", "emerald", "newpass456")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateProfile_BasicFields(t *testing.T) {
	svc, repo := seededService(t)
	admin, _ := repo.GetByUsername(context.Background(), "admin")

	u, err := svc.UpdateProfile(context.Background(), admin.ID, UpdateProfileInput{
		Username: "maria",
		Name:     "Maria Santos",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Username != "maria" || u.Name != "Maria Santos" {
		t.Errorf("unexpected profile: %+v", u)
	}

	// Credentials untouched
	if _, err := svc.Login(context.Background(), "maria", "password123"); err != nil {
		t.Errorf("expected password to survive a profile edit: %v", err)
	}
}

func TestUpdateProfile_ChangesPassword(t *testing.T) {
	svc, repo := seededService(t)
	admin, _ := repo.GetByUsername(context.Background(), "admin")

	_, err := svc.UpdateProfile(context.Background(), admin.ID, UpdateProfileInput{
		Username: "admin",
		Name:     "BHW Maria",
		Password: "changed789",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Login(context.Background(), "admin", "changed789"); err != nil {
		t.Errorf("expected new password to work: %v", err)
	}
}

func TestUpdateProfile_ChangesRecoveryAnswer(t *testing.T) {
	svc, repo := seededService(t)
	admin, _ := repo.GetByUsername(context.Background(), "admin")

	_, err := svc.UpdateProfile(context.Background(), admin.ID, UpdateProfileInput{
		Username:         "admin",
		Name:             "BHW Maria",
		RecoveryQuestion: "What is your pet's name?",
		RecoveryAnswer:   "Bantay",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.ResetPassword(context.Background(), "admin", "bantay", "newpass456"); err != nil {
		t.Errorf("expected new recovery answer to verify: %v", err)
	}
}

func TestUpdateProfile_RequiresUsernameAndName(t *testing.T) {
	svc, repo := seededService(t)
	admin, _ := repo.GetByUsername(context.Background(), "admin")

	if _, err := svc.UpdateProfile(context.Background(), admin.ID, UpdateProfileInput{Name: "X"}); err == nil {
		t.Error("expected error for missing username")
	}
	if _, err := svc.UpdateProfile(context.Background(), admin.ID, UpdateProfileInput{Username: "x"}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestUpdateProfile_UsernameCollision(t *testing.T) {
	svc, repo := seededService(t)
	admin, _ := repo.GetByUsername(context.Background(), "admin")

	other := &User{Username: "nurse", Name: "Nurse Ana", Role: "Nurse"}
	if err := repo.Create(context.Background(), other); err != nil {
		t.Fatalf("create second user: %v", err)
	}

	_, err := svc.UpdateProfile(context.Background(), admin.ID, UpdateProfileInput{
		Username: "nurse",
		Name:     "BHW Maria",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestCheckUsername(t *testing.T) {
	svc, repo := seededService(t)
	admin, _ := repo.GetByUsername(context.Background(), "admin")

	other := &User{Username: "nurse", Name: "Nurse Ana", Role: "Nurse"}
	if err := repo.Create(context.Background(), other); err != nil {
		t.Fatalf("create second user: %v", err)
	}

	// Own username stays available for yourself
	available, err := svc.CheckUsername(context.Background(), "admin", admin.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !available {
		t.Error("expected own username to count as available")
	}

	// Someone else's username is taken
	available, _ = svc.CheckUsername(context.Background(), "nurse", admin.ID)
	if available {
		t.Error("expected other user's name to be taken")
	}

	// Unused name is available
	available, _ = svc.CheckUsername(context.Background(), "fresh", admin.ID)
	if !available {
		t.Error("expected unused username to be available")
	}

	// Blank is never available
	available, _ = svc.CheckUsername(context.Background(), "  ", admin.ID)
	if available {
		t.Error("expected blank username to be unavailable")
	}
}
