package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/amolina-dev/postapi/internal/models"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

type Postgres struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

// ---------------------- users ----------------------

func (p *Postgres) CreateUser(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	var u models.User
	err := p.db.QueryRowxContext(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password_hash, created_at, updated_at
	`, name, email, passwordHash).StructScan(&u)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return models.User{}, ErrEmailTaken
	}
	if err != nil {
		return models.User{}, fmt.Errorf("store: create user: %w", err)
	}
	return u, nil
}

func (p *Postgres) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := p.db.GetContext(ctx, &u, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email=$1
	`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("store: user by email: %w", err)
	}
	return u, nil
}

func (p *Postgres) TouchUser(ctx context.Context, id int64) error {
	_, err := p.db.ExecContext(ctx, `UPDATE users SET updated_at=now() WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("store: touch user: %w", err)
	}
	return nil
}

// ---------------------- posts ----------------------

func (p *Postgres) ListPosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	posts := []models.Post{}
	err := p.db.SelectContext(ctx, &posts, `
		SELECT id, title, created_at, updated_at
		FROM posts
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("store: list posts: %w", err)
	}
	return posts, nil
}

func (p *Postgres) CreatePost(ctx context.Context, title string) (models.Post, error) {
	var post models.Post
	err := p.db.QueryRowxContext(ctx, `
		INSERT INTO posts (title)
		VALUES ($1)
		RETURNING id, title, created_at, updated_at
	`, title).StructScan(&post)
	if err != nil {
		return models.Post{}, fmt.Errorf("store: create post: %w", err)
	}
	return post, nil
}

func (p *Postgres) PostByID(ctx context.Context, id int64) (models.Post, error) {
	var post models.Post
	err := p.db.GetContext(ctx, &post, `
		SELECT id, title, created_at, updated_at FROM posts WHERE id=$1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("store: post by id: %w", err)
	}
	return post, nil
}

func (p *Postgres) UpdatePostTitle(ctx context.Context, id int64, title string) (models.Post, error) {
	var post models.Post
	err := p.db.QueryRowxContext(ctx, `
		UPDATE posts
		SET title=$1, updated_at=now()
		WHERE id=$2
		RETURNING id, title, created_at, updated_at
	`, title, id).StructScan(&post)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("store: update post: %w", err)
	}
	return post, nil
}

func (p *Postgres) DeletePost(ctx context.Context, id int64) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("store: delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete post: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------- tokens ----------------------

func (p *Postgres) CreateToken(ctx context.Context, token models.AccessToken) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO access_tokens (id, user_id, expires_at)
		VALUES ($1, $2, $3)
	`, token.ID, token.UserID, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("store: create token: %w", err)
	}
	return nil
}

func (p *Postgres) ActiveToken(ctx context.Context, id string) (models.AccessToken, error) {
	var t models.AccessToken
	err := p.db.GetContext(ctx, &t, `
		SELECT id, user_id, revoked, created_at, expires_at
		FROM access_tokens
		WHERE id=$1 AND NOT revoked AND expires_at > now()
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AccessToken{}, ErrNotFound
	}
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("store: active token: %w", err)
	}
	return t, nil
}

func (p *Postgres) RevokeUserTokens(ctx context.Context, userID int64) error {
	_, err := p.db.ExecContext(ctx, `
		UPDATE access_tokens SET revoked=TRUE WHERE user_id=$1 AND NOT revoked
	`, userID)
	if err != nil {
		return fmt.Errorf("store: revoke tokens: %w", err)
	}
	return nil
}
