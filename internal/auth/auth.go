// Package auth implements account creation, credential sign-in, sessions,
// and per-user profile records. It replaces the hosted auth backend the
// first version of the gallery delegated to, keeping the same small set of
// human-readable failure causes.
package auth

import (
	"database/sql"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusfest/memories/internal/config"
	"github.com/campusfest/memories/internal/db"
	"github.com/campusfest/memories/internal/errors"
)

// MinPasswordLen is the weak-password threshold.
const MinPasswordLen = 6

// Service provides authentication and profile operations.
type Service struct {
	db  *sql.DB
	cfg *config.Config
}

// NewService creates an auth service over the given database.
func NewService(database *sql.DB, cfg *config.Config) *Service {
	return &Service{db: database, cfg: cfg}
}

// Profile is the client-facing account record.
type Profile struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone,omitempty"`
	College   *string `json:"college,omitempty"`
}

// Session is an issued sign-in session.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SignUpInput contains parameters for account creation.
type SignUpInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
	College   *string
}

// normalizeEmail lowercases and trims an email for uniqueness comparison.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates an account and opens a session for it.
// Failure causes map to the fixed taxonomy: missing fields, invalid email,
// weak password, email already in use.
func (s *Service) SignUp(input SignUpInput) (*Profile, *Session, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)

	if input.Email == "" || input.Password == "" || input.FirstName == "" || input.LastName == "" {
		return nil, nil, errors.NewInvalidRequest("email, password, first_name, and last_name are required")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, nil, errors.NewInvalidEmail()
	}
	if len(input.Password) < MinPasswordLen {
		return nil, nil, errors.NewWeakPassword()
	}

	cost := s.cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), cost)
	if err != nil {
		return nil, nil, errors.NewInternal(err)
	}

	now := time.Now().Unix()
	user := &db.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		EmailNorm:    normalizeEmail(input.Email),
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		College:      input.College,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := db.InsertUser(s.db, user); err != nil {
		if err == db.ErrUniqueConstraint {
			return nil, nil, errors.NewEmailInUse()
		}
		return nil, nil, err
	}

	session, err := s.openSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return profileOf(user), session, nil
}

// SignIn verifies credentials and opens a session. An unknown email reports
// user-not-found; a wrong password reports invalid-credential.
func (s *Service) SignIn(email, password string) (*Profile, *Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, nil, errors.NewInvalidRequest("email and password are required")
	}

	user, err := db.GetUserByEmail(s.db, normalizeEmail(email))
	if err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, errors.NewInvalidCredential()
	}

	session, err := s.openSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return profileOf(user), session, nil
}

// SignOut closes the session for the given token. Unknown tokens are a
// no-op, matching the non-fatal error posture of the client.
func (s *Service) SignOut(token string) error {
	return db.DeleteSession(s.db, token)
}

// Authenticate resolves a session token to its account. Expired sessions
// are removed and rejected.
func (s *Service) Authenticate(token string) (*db.User, error) {
	if token == "" {
		return nil, errors.NewUnauthorized()
	}
	session, err := db.GetSession(s.db, token)
	if err != nil {
		return nil, err
	}
	if session.ExpiresAt <= time.Now().Unix() {
		_ = db.DeleteSession(s.db, token)
		return nil, errors.NewUnauthorized()
	}
	user, err := db.GetUserByID(s.db, session.UserID)
	if err != nil {
		return nil, errors.NewUnauthorized()
	}
	return user, nil
}

// Profile returns the client-facing profile for an account id.
func (s *Service) Profile(userID string) (*Profile, error) {
	user, err := db.GetUserByID(s.db, userID)
	if err != nil {
		return nil, err
	}
	return profileOf(user), nil
}

// UpdateProfileInput contains the editable profile fields.
type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Phone     *string
	College   *string
}

// UpdateProfile updates the profile record for an account id.
func (s *Service) UpdateProfile(userID string, input UpdateProfileInput) (*Profile, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if input.FirstName == "" || input.LastName == "" {
		return nil, errors.NewInvalidRequest("first_name and last_name are required")
	}
	now := time.Now().Unix()
	if err := db.UpdateUserProfile(s.db, userID, input.FirstName, input.LastName, input.Phone, input.College, now); err != nil {
		return nil, err
	}
	return s.Profile(userID)
}

// openSession issues a fresh session token for an account.
func (s *Service) openSession(userID string) (*Session, error) {
	now := time.Now()
	ttl := s.cfg.SessionTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	session := &db.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
	if err := db.InsertSession(s.db, session); err != nil {
		return nil, err
	}
	return &Session{
		Token:     session.Token,
		UserID:    userID,
		ExpiresAt: time.Unix(session.ExpiresAt, 0),
	}, nil
}

func profileOf(u *db.User) *Profile {
	return &Profile{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		College:   u.College,
	}
}
