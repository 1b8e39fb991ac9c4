package store

import (
	"context"
	"errors"

	"github.com/amolina-dev/postapi/internal/models"
)

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrEmailTaken is returned when registration hits the unique email
	// constraint.
	ErrEmailTaken = errors.New("store: email already taken")
)

type Users interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (models.User, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	TouchUser(ctx context.Context, id int64) error
}

type Posts interface {
	ListPosts(ctx context.Context, limit, offset int) ([]models.Post, error)
	CreatePost(ctx context.Context, title string) (models.Post, error)
	PostByID(ctx context.Context, id int64) (models.Post, error)
	UpdatePostTitle(ctx context.Context, id int64, title string) (models.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

type Tokens interface {
	CreateToken(ctx context.Context, token models.AccessToken) error
	// ActiveToken returns the token row only if it exists, is not revoked
	// and has not expired; anything else is ErrNotFound.
	ActiveToken(ctx context.Context, id string) (models.AccessToken, error)
	RevokeUserTokens(ctx context.Context, userID int64) error
}

// Store is the full persistence surface the handlers depend on.
type Store interface {
	Users
	Posts
	Tokens
}
