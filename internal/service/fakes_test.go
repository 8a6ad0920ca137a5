package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"abyss-server/internal/models"
	"abyss-server/internal/repository"
)

// In-memory repository fakes for unit testing the services without
// Postgres or Redis.

type fakeUserRepo struct {
	mu             sync.Mutex
	users          map[string]*models.User // keyed by username
	err            error                   // when set, every call fails with it
	recordLoginErr error                   // when set, only RecordLogin fails
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[user.Username]; ok {
		return models.ErrUserAlreadyExists
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return models.ErrEmailAlreadyExists
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	f.users[user.Username] = &cp
	return nil
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[username]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeUserRepo) ListUsers(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (f *fakeUserRepo) ListPendingUsers(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.User
	for _, u := range f.users {
		if !u.Approved {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (f *fakeUserRepo) ApproveUser(_ context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	u, ok := f.users[username]
	if !ok {
		return models.ErrUserNotFound
	}
	u.Approved = true
	return nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[username]; !ok {
		return models.ErrUserNotFound
	}
	delete(f.users, username)
	return nil
}

func (f *fakeUserRepo) RecordLogin(_ context.Context, username string, loginAt time.Time, xpBonus, streakDays int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.recordLoginErr != nil {
		return f.recordLoginErr
	}
	u, ok := f.users[username]
	if !ok {
		return models.ErrUserNotFound
	}
	t := loginAt
	u.LastLogin = &t
	u.XP += xpBonus
	u.StreakDays = streakDays
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
	err      error
}

var _ repository.SessionRepository = (*fakeSessionRepo)(nil)

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (f *fakeSessionRepo) SaveSession(_ context.Context, session *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cp := *session
	f.sessions[session.Token] = &cp
	return nil
}

func (f *fakeSessionRepo) GetSession(_ context.Context, token string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sessions[token]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) DeleteSession(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

type fakePostRepo struct {
	mu     sync.Mutex
	posts  []models.Post
	nextID int64
	err    error
}

var _ repository.PostRepository = (*fakePostRepo)(nil)

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{nextID: 1}
}

func (f *fakePostRepo) ListPosts(_ context.Context) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Post, len(f.posts))
	copy(out, f.posts)
	// Newest first.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	post.ID = f.nextID
	f.nextID++
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	f.posts = append(f.posts, *post)
	return nil
}

func (f *fakePostRepo) UpdatePost(_ context.Context, id int64, title, content string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts[i].Title = title
			f.posts[i].Content = content
			f.posts[i].UpdatedAt = time.Now()
			cp := f.posts[i]
			return &cp, nil
		}
	}
	return nil, models.ErrPostNotFound
}

func (f *fakePostRepo) DeletePost(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return models.ErrPostNotFound
}

type fakeContactRepo struct {
	mu       sync.Mutex
	contacts []models.Contact
	err      error
}

var _ repository.ContactRepository = (*fakeContactRepo)(nil)

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{}
}

func (f *fakeContactRepo) CreateContact(_ context.Context, contact *models.Contact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	contact.ID = uuid.New()
	contact.CreatedAt = time.Now()
	f.contacts = append(f.contacts, *contact)
	return nil
}

func (f *fakeContactRepo) ListContacts(_ context.Context) ([]models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Contact, len(f.contacts))
	copy(out, f.contacts)
	return out, nil
}

func (f *fakeContactRepo) UpdateContactStatus(_ context.Context, id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for i := range f.contacts {
		if f.contacts[i].ID == id {
			f.contacts[i].Status = status
			return nil
		}
	}
	return models.ErrContactNotFound
}
