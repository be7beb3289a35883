package service

import (
	"context"
	"errors"

	"github.com/Krtikgoswami/project001/internal/domain/user"
	"github.com/Krtikgoswami/project001/internal/security"
)

var (
	ErrDuplicateUser      = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore is the slice of the credential store the auth flow needs.
// Kept small so tests can fake it easily.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Create(ctx context.Context, email, passwordHash, name, role string) (user.User, error)
	List(ctx context.Context) ([]user.User, error)
}

type TokenIssuer interface {
	Issue(email, role string) (string, error)
}

// Session is what signup and login hand back to the HTTP layer.
type Session struct {
	Token string
	Email string
	Role  string
}

type AuthService struct {
	store  UserStore
	tokens TokenIssuer
	admins map[string]struct{}
}

func NewAuthService(store UserStore, tokens TokenIssuer, adminEmails []string) *AuthService {
	admins := make(map[string]struct{}, len(adminEmails))

	for _, e := range adminEmails {
		admins[e] = struct{}{}
	}

	return &AuthService{
		store:  store,
		tokens: tokens,
		admins: admins,
	}
}

// roleFor assigns admin to allow-listed emails, user to everyone else.
// The role is fixed at signup and rides inside the token from then on.
func (s *AuthService) roleFor(email string) string {
	if _, ok := s.admins[email]; ok {
		return user.RoleAdmin
	}

	return user.RoleUser
}

func (s *AuthService) Signup(ctx context.Context, email, password, name string) (Session, error) {
	// friendly fast path; the store's unique index is the real guard
	_, err := s.store.GetByEmail(ctx, email)

	if err == nil {
		return Session{}, ErrDuplicateUser
	}

	if !errors.Is(err, user.ErrNotFound) {
		return Session{}, err
	}

	hash, err := security.HashPassword(password)

	if err != nil {
		return Session{}, err
	}

	role := s.roleFor(email)

	u, err := s.store.Create(ctx, email, hash, name, role)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			// lost the race to a concurrent signup
			return Session{}, ErrDuplicateUser
		}

		return Session{}, err
	}

	token, err := s.tokens.Issue(u.Email, u.Role)

	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, Email: u.Email, Role: u.Role}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	u, err := s.store.GetByEmail(ctx, email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, ErrUserNotFound
		}

		return Session{}, err
	}

	err = security.CheckPassword(u.PasswordHash, password)

	if err != nil {
		return Session{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.Email, u.Role)

	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, Email: u.Email, Role: u.Role}, nil
}

// ListUsers feeds the admin dashboard. Password hashes stay behind; the
// user JSON tags already hide them but the caller shapes its own response.
func (s *AuthService) ListUsers(ctx context.Context) ([]user.User, error) {
	return s.store.List(ctx)
}
