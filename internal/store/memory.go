package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/amolina-dev/postapi/internal/models"
)

// Memory is a mutex-guarded in-memory Store. It backs the test suite and
// serves as a dev fallback when no DATABASE_URL is configured.
type Memory struct {
	mu sync.Mutex

	users      map[int64]models.User
	posts      map[int64]models.Post
	tokens     map[string]models.AccessToken
	nextUserID int64
	nextPostID int64
}

func NewMemory() *Memory {
	return &Memory{
		users:      make(map[int64]models.User),
		posts:      make(map[int64]models.Post),
		tokens:     make(map[string]models.AccessToken),
		nextUserID: 1,
		nextPostID: 1,
	}
}

// ---------------------- users ----------------------

func (m *Memory) CreateUser(_ context.Context, name, email, passwordHash string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return models.User{}, ErrEmailTaken
		}
	}

	now := time.Now()
	u := models.User{
		ID:           m.nextUserID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.nextUserID++
	m.users[u.ID] = u
	return u, nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *Memory) TouchUser(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.UpdatedAt = time.Now()
	m.users[id] = u
	return nil
}

// ---------------------- posts ----------------------

func (m *Memory) ListPosts(_ context.Context, limit, offset int) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]models.Post, 0, len(m.posts))
	for _, p := range m.posts {
		all = append(all, p)
	}
	// newest first, matching the SQL store's ORDER BY id DESC
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	if offset >= len(all) {
		return []models.Post{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *Memory) CreatePost(_ context.Context, title string) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	p := models.Post{
		ID:        m.nextPostID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.nextPostID++
	m.posts[p.ID] = p
	return p, nil
}

func (m *Memory) PostByID(_ context.Context, id int64) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return models.Post{}, ErrNotFound
	}
	return p, nil
}

func (m *Memory) UpdatePostTitle(_ context.Context, id int64, title string) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return models.Post{}, ErrNotFound
	}
	p.Title = title
	p.UpdatedAt = time.Now()
	m.posts[id] = p
	return p, nil
}

func (m *Memory) DeletePost(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// ---------------------- tokens ----------------------

func (m *Memory) CreateToken(_ context.Context, token models.AccessToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	m.tokens[token.ID] = token
	return nil
}

func (m *Memory) ActiveToken(_ context.Context, id string) (models.AccessToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tokens[id]
	if !ok || t.Revoked || time.Now().After(t.ExpiresAt) {
		return models.AccessToken{}, ErrNotFound
	}
	return t, nil
}

func (m *Memory) RevokeUserTokens(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, t := range m.tokens {
		if t.UserID == userID && !t.Revoked {
			t.Revoked = true
			m.tokens[id] = t
		}
	}
	return nil
}
