package service

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/DanielFonsecaa/42chess/internal/store"
	users "github.com/DanielFonsecaa/42chess/internal/user"
	"github.com/DanielFonsecaa/42chess/internal/utils"
	"github.com/google/uuid"
	"github.com/markbates/goth"
)

// GuestUserID is the shared account behind guest logins.
var GuestUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

const guestEmail = "guest@42chess.local"

type UserService struct {
	store       *store.UserStore
	adminEmails []string
}

// NewUserService promotes users whose email is in adminEmails on every login.
func NewUserService(store *store.UserStore, adminEmails []string) *UserService {
	normalized := make([]string, 0, len(adminEmails))
	for _, email := range adminEmails {
		if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
			normalized = append(normalized, email)
		}
	}
	return &UserService{store: store, adminEmails: normalized}
}

func (s *UserService) isAdmin(email string) bool {
	return slices.Contains(s.adminEmails, strings.ToLower(strings.TrimSpace(email)))
}

func displayName(gothUser goth.User) string {
	for _, name := range []string{gothUser.NickName, gothUser.Name, gothUser.Email} {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return "player"
}

func (s *UserService) FindOrCreateUserByProvider(ctx context.Context, gothUser goth.User) (*users.User, error) {
	user, err := s.store.GetUserByProvider(ctx, gothUser.Provider, gothUser.UserID)

	if err == nil {
		name := displayName(gothUser)
		admin := s.isAdmin(user.Email)
		if utils.OrZero(user.AvatarURL) != gothUser.AvatarURL || user.Username != name || user.IsAdmin != admin {
			user.AvatarURL = utils.StringOrNil(gothUser.AvatarURL)
			user.Username = name
			user.IsAdmin = admin
			if err := s.store.UpdateUserProfile(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		newUser := &users.User{
			ID:         uuid.New(),
			Email:      gothUser.Email,
			Username:   displayName(gothUser),
			IsAdmin:    s.isAdmin(gothUser.Email),
			CreatedAt:  time.Now().UTC(),
			Provider:   utils.Ptr(gothUser.Provider),
			ProviderID: utils.Ptr(gothUser.UserID),
			AvatarURL:  utils.StringOrNil(gothUser.AvatarURL),
		}
		if err := s.store.CreateUser(ctx, newUser); err != nil {
			return nil, err
		}
		return newUser, nil
	}

	return nil, err
}

// EnsureGuestUser returns the guest account, creating it on first use. The
// guest is an admin only when its address is listed in adminEmails.
func (s *UserService) EnsureGuestUser(ctx context.Context) (*users.User, error) {
	user, err := s.store.GetUser(ctx, s.store.DB(), GuestUserID)
	if err == nil {
		return user, nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		guestUser := &users.User{
			ID:        GuestUserID,
			Email:     guestEmail,
			Username:  "Guest",
			IsAdmin:   s.isAdmin(guestEmail),
			CreatedAt: time.Now().UTC(),
		}
		if err := s.store.CreateUser(ctx, guestUser); err != nil {
			return nil, err
		}
		return guestUser, nil
	}
	return nil, err
}
