package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/padraicbc/concursos/auth"
	"github.com/padraicbc/concursos/models"
	"github.com/padraicbc/concursos/store"
)

type SigninInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is a freshly issued token and the principal it carries.
type Session struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      auth.Principal `json:"user"`
}

type UserInput struct {
	Username string
	Password string
	Role     string
	Nombre   string
	Email    string
}

// Users is the built-in identity provider backed by the users table.
type Users struct {
	base
	store store.Users
	key   []byte
	roles auth.Roles
}

var errBadCredentials = &Error{Kind: KindUnauthenticated, Message: "Invalid credentials"}

func (s *Users) Signin(ctx context.Context, in SigninInput) (*Session, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, invalid("Username and password are required")
	}

	u, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !auth.CheckPassword(u.Password, in.Password) {
		return nil, errBadCredentials
	}

	p := auth.Principal{ID: u.ID, Name: u.Nombre, Email: u.Email, Role: s.roles.Normalize(u.Role)}
	token, exp, err := auth.Issue(p, s.key, s.now())
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}
	return &Session{Token: token, ExpiresAt: exp, User: p}, nil
}

// Save creates the user or replaces password, profile and role of an
// existing one with the same username.
func (s *Users) Save(ctx context.Context, in UserInput) (*models.User, error) {
	hash, err := auth.HashPassword(in.Username, in.Password)
	if err != nil {
		return nil, invalid(err.Error())
	}
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = string(auth.RoleUser)
	}

	u := &models.User{
		ID:       s.newID(),
		Username: strings.TrimSpace(in.Username),
		Password: hash,
		Nombre:   strings.TrimSpace(in.Nombre),
		Email:    strings.TrimSpace(in.Email),
		Role:     role,
	}
	if err := s.store.SaveUser(ctx, u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return u, nil
}
