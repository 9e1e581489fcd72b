package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/bookbazaar/internal/events"
	"github.com/Skotchmaster/bookbazaar/internal/models"
	"github.com/Skotchmaster/bookbazaar/internal/repo"
	"github.com/Skotchmaster/bookbazaar/internal/transport"
	"github.com/Skotchmaster/bookbazaar/pkg/hash"
	"github.com/Skotchmaster/bookbazaar/pkg/tokens"
)

type AuthService struct {
	Repo      repo.Repository
	Events    events.Publisher
	JWTSecret []byte
	AccessTTL time.Duration
}

type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) ttl() time.Duration {
	if s.AccessTTL <= 0 {
		return 24 * time.Hour
	}
	return s.AccessTTL
}

func (s *AuthService) issue(user *models.User) (*Session, error) {
	exp := time.Now().Add(s.ttl()).UTC()
	token, err := tokens.NewAccessToken(user.ID, user.Username, exp, s.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	return &Session{User: user, Token: token, ExpiresAt: exp}, nil
}

// checkUnique reports a taken username or email, ignoring the user's own record.
func checkUnique(ctx context.Context, r repo.Repository, selfID uint, username, email string) error {
	if u, err := r.GetUserByUsername(ctx, username); err == nil && u.ID != selfID {
		return &ConflictError{Msg: "Username already exists"}
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	if u, err := r.GetUserByEmail(ctx, email); err == nil && u.ID != selfID {
		return &ConflictError{Msg: "Email already exists"}
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	return nil
}

// Register creates the account and signs the user in.
func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*Session, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	name := strings.TrimSpace(req.Name)
	switch {
	case username == "":
		return nil, invalid("Username is required")
	case req.Password == "":
		return nil, invalid("Password is required")
	case name == "":
		return nil, invalid("Name is required")
	case email == "":
		return nil, invalid("Email is required")
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hashed,
		Name:         name,
		Email:        email,
		ProfileImage: req.ProfileImage,
	}
	err = s.Repo.Atomically(ctx, func(tx repo.Repository) error {
		if err := checkUnique(ctx, tx, 0, username, email); err != nil {
			return err
		}
		return tx.CreateUser(ctx, user)
	})
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, &ConflictError{Msg: "Username or email already exists"}
	}
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicUsers, events.Event{Type: events.UserCreated, EntityID: user.ID, UserID: user.ID})
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.Repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return user, err
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, req transport.UpdateProfileRequest) (*models.User, error) {
	var hashed string
	if req.Password != nil {
		if *req.Password == "" {
			return nil, invalid("Password is required")
		}
		var err error
		if hashed, err = hash.HashPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	var user *models.User
	err := s.Repo.Atomically(ctx, func(tx repo.Repository) error {
		u, err := tx.GetUser(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		if err != nil {
			return err
		}

		if req.Name != nil {
			if u.Name = strings.TrimSpace(*req.Name); u.Name == "" {
				return invalid("Name is required")
			}
		}
		if req.Email != nil {
			if u.Email = strings.TrimSpace(*req.Email); u.Email == "" {
				return invalid("Email is required")
			}
		}
		if req.ProfileImage != nil {
			u.ProfileImage = req.ProfileImage
		}
		if hashed != "" {
			u.PasswordHash = hashed
		}

		if err := checkUnique(ctx, tx, u.ID, u.Username, u.Email); err != nil {
			return err
		}
		if err := tx.SaveUser(ctx, u); err != nil {
			return err
		}
		user = u
		return nil
	})
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, &ConflictError{Msg: "Email already exists"}
	}
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicUsers, events.Event{Type: events.UserUpdated, EntityID: user.ID, UserID: user.ID})
	return user, nil
}
