package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/recipebox/internal/auth/domain"
	"github.com/aussiebroadwan/recipebox/internal/auth/store"
	"github.com/aussiebroadwan/recipebox/pkg/authsdk"
	"github.com/aussiebroadwan/recipebox/pkg/cryptox"
	"github.com/aussiebroadwan/recipebox/pkg/idx"
	"github.com/aussiebroadwan/recipebox/pkg/jwtx"
	"github.com/aussiebroadwan/recipebox/pkg/slogx"
)

// Field messages shown to the user.
const (
	MsgEmailExists       = "Email already exists"
	MsgUserNotFound      = "User not found"
	MsgPasswordIncorrect = "Password incorrect"
)

type (
	RegisterInput = authsdk.RegisterRequest
	LoginInput    = authsdk.LoginRequest
)

// TokenIssuer signs tokens for a user.
type TokenIssuer interface {
	Issue(s jwtx.Subject, ttl time.Duration) (string, jwtx.Claims, error)
}

type UserService struct {
	Store    store.Store
	Hasher   *cryptox.Pool
	Codec    TokenIssuer
	Avatars  Avatars
	TokenTTL time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *UserService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return jwtx.DefaultTokenTTL
}

// Register creates a new account.
// It performs the following steps:
// 1. Validates the input shape
// 2. Derives the avatar URL from the email
// 3. Hashes the password
// 4. Checks the email is not taken and persists the user with a fresh ULID,
//    both inside one transaction
func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	if errs := in.Validate(); errs != nil {
		return domain.User{}, validationError(errs)
	}
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	// 2. Avatar
	avatar := s.Avatars.URL(email)

	// 3. Hash the password. This stays outside the transaction so the
	// connection is not held while hashing.
	hash, err := s.Hasher.Hash(ctx, in.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, internalError(err)
	}

	// 4. Verify email is available and create the user
	now := s.now()
	user := domain.User{
		ID:           idx.NewAt(now).String(),
		Name:         name,
		Email:        email,
		Avatar:       avatar,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByEmail(ctx, email)
		if err == nil {
			return store.ErrAlreadyExists
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Info("registration attempted with existing email")
			return domain.User{}, fieldError(ErrDuplicateAccount, "email", MsgEmailExists)
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, internalError(err)
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

// Login checks the credentials and returns "Bearer <jwt>" on success.
func (s *UserService) Login(ctx context.Context, in LoginInput) (string, error) {
	log := slogx.FromContext(ctx)

	if errs := in.Validate(); errs != nil {
		return "", validationError(errs)
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("login attempted for unknown email")
			return "", fieldError(ErrUserNotFound, "email", MsgUserNotFound)
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return "", internalError(err)
	}

	ok, err := s.Hasher.Verify(ctx, in.Password, user.PasswordHash)
	if err != nil {
		return "", internalError(err)
	}
	if !ok {
		log.Info("login failed: password mismatch", slog.String("user_id", user.ID))
		return "", fieldError(ErrInvalidCredentials, "password", MsgPasswordIncorrect)
	}

	token, claims, err := s.Codec.Issue(jwtx.Subject{
		ID:     user.ID,
		Name:   user.Name,
		Avatar: user.Avatar,
	}, s.ttl())
	if err != nil {
		log.Error("failed to sign token", slog.Any("error", err))
		return "", internalError(err)
	}

	log.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.Time("expires_at", claims.ExpiresAt.Time),
	)
	return "Bearer " + token, nil
}

// Current returns the user a verified token belongs to. A subject that no
// longer exists is reported as ErrUserNotFound.
func (s *UserService) Current(ctx context.Context, subject string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, fieldError(ErrUserNotFound, "id", MsgUserNotFound)
		}
		slogx.FromContext(ctx).Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, internalError(err)
	}
	return user, nil
}

// ListUsers returns every account in signup order.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list users", slog.Any("error", err))
		return nil, internalError(err)
	}
	return users, nil
}
