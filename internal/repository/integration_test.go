package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"abyss-server/internal/database"
	"abyss-server/internal/models"
	"abyss-server/internal/repository"
)

// Integration tests run the repositories against real Postgres and Redis
// in containers. Run with -short to skip them.

type RepositoryIntegrationSuite struct {
	suite.Suite
	ctx            context.Context
	pgContainer    *postgres.PostgresContainer
	redisContainer *tcredis.RedisContainer
	pool           *pgxpool.Pool
	redisClient    *goredis.Client

	users    repository.UserRepository
	sessions repository.SessionRepository
	posts    repository.PostRepository
	contacts repository.ContactRepository
}

func TestRepositoryIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(RepositoryIntegrationSuite))
}

func (s *RepositoryIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	pgContainer, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("abyss_test"),
		postgres.WithUsername("abyss"),
		postgres.WithPassword("secret"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err, "failed to start postgres container")
	s.pgContainer = pgContainer

	connStr, err := pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.Require().NoError(database.RunMigrations(connStr, zap.NewNop()))

	pool, err := pgxpool.New(s.ctx, connStr)
	s.Require().NoError(err)
	s.pool = pool

	redisContainer, err := tcredis.Run(s.ctx, "redis:7-alpine")
	s.Require().NoError(err, "failed to start redis container")
	s.redisContainer = redisContainer

	redisURL, err := redisContainer.ConnectionString(s.ctx)
	s.Require().NoError(err)
	opts, err := goredis.ParseURL(redisURL)
	s.Require().NoError(err)
	s.redisClient = goredis.NewClient(opts)

	logger := zap.NewNop()
	s.users = repository.NewPgUserRepository(pool, logger)
	s.sessions = repository.NewRedisSessionRepository(s.redisClient, logger)
	s.posts = repository.NewPgPostRepository(pool, logger)
	s.contacts = repository.NewPgContactRepository(pool, logger)
}

func (s *RepositoryIntegrationSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.redisClient != nil {
		_ = s.redisClient.Close()
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
	if s.redisContainer != nil {
		_ = s.redisContainer.Terminate(s.ctx)
	}
}

func (s *RepositoryIntegrationSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, "TRUNCATE users, posts, contacts")
	s.Require().NoError(err)
	s.Require().NoError(s.redisClient.FlushDB(s.ctx).Err())
}

func (s *RepositoryIntegrationSuite) newUser(username, email string) *models.User {
	return &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$fakedigestfortestingonlyfakedigestfortestingonly",
		Role:         models.RolePoster,
		Avatar:       "🌀",
		XP:           50,
	}
}

func (s *RepositoryIntegrationSuite) TestUserLifecycle() {
	user := s.newUser("alice", "alice@example.com")
	s.Require().NoError(s.users.CreateUser(s.ctx, user))
	s.NotEqual(uuid.Nil, user.ID, "CreateUser should fill the generated id")
	s.False(user.CreatedAt.IsZero())

	got, err := s.users.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user.ID, got.ID)
	s.Equal("alice@example.com", got.Email)
	s.False(got.Approved)
	s.Nil(got.LastLogin)

	byEmail, err := s.users.GetUserByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(user.ID, byEmail.ID)

	_, err = s.users.GetUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, models.ErrUserNotFound)

	s.Require().NoError(s.users.ApproveUser(s.ctx, "alice"))
	got, err = s.users.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.True(got.Approved)

	s.ErrorIs(s.users.ApproveUser(s.ctx, "nobody"), models.ErrUserNotFound)

	s.Require().NoError(s.users.DeleteUser(s.ctx, "alice"))
	s.ErrorIs(s.users.DeleteUser(s.ctx, "alice"), models.ErrUserNotFound)
}

func (s *RepositoryIntegrationSuite) TestUserUniqueViolations() {
	s.Require().NoError(s.users.CreateUser(s.ctx, s.newUser("alice", "alice@example.com")))

	err := s.users.CreateUser(s.ctx, s.newUser("alice", "other@example.com"))
	s.ErrorIs(err, models.ErrUserAlreadyExists)

	err = s.users.CreateUser(s.ctx, s.newUser("alice2", "alice@example.com"))
	s.ErrorIs(err, models.ErrEmailAlreadyExists)
}

func (s *RepositoryIntegrationSuite) TestListUsersAndPending() {
	s.Require().NoError(s.users.CreateUser(s.ctx, s.newUser("alice", "alice@example.com")))
	s.Require().NoError(s.users.CreateUser(s.ctx, s.newUser("bob", "bob@example.com")))
	s.Require().NoError(s.users.ApproveUser(s.ctx, "alice"))

	all, err := s.users.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)

	pending, err := s.users.ListPendingUsers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal("bob", pending[0].Username)
}

func (s *RepositoryIntegrationSuite) TestRecordLogin() {
	s.Require().NoError(s.users.CreateUser(s.ctx, s.newUser("alice", "alice@example.com")))

	loginAt := time.Now().UTC().Truncate(time.Second)
	s.Require().NoError(s.users.RecordLogin(s.ctx, "alice", loginAt, 10, 3))

	got, err := s.users.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(60, got.XP, "login bonus is added to the stored xp")
	s.Equal(3, got.StreakDays)
	s.Require().NotNil(got.LastLogin)
	s.WithinDuration(loginAt, *got.LastLogin, time.Second)
}

func (s *RepositoryIntegrationSuite) TestPostsOrderingAndMutations() {
	for _, title := range []string{"first", "second", "third"} {
		s.Require().NoError(s.posts.CreatePost(s.ctx, &models.Post{
			Title:   title,
			Content: "content of " + title,
			Author:  "Alice",
		}))
	}

	posts, err := s.posts.ListPosts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(posts, 3)
	s.Equal("third", posts[0].Title, "newest post comes first")
	s.Equal("first", posts[2].Title)

	updated, err := s.posts.UpdatePost(s.ctx, posts[1].ID, "second v2", "rewritten")
	s.Require().NoError(err)
	s.Equal("second v2", updated.Title)
	s.Equal("Alice", updated.Author)

	_, err = s.posts.UpdatePost(s.ctx, 999999, "x", "y")
	s.ErrorIs(err, models.ErrPostNotFound)

	s.Require().NoError(s.posts.DeletePost(s.ctx, posts[0].ID))
	s.ErrorIs(s.posts.DeletePost(s.ctx, posts[0].ID), models.ErrPostNotFound)

	posts, err = s.posts.ListPosts(s.ctx)
	s.Require().NoError(err)
	s.Len(posts, 2)
}

func (s *RepositoryIntegrationSuite) TestContactLifecycle() {
	contact := &models.Contact{
		Name:    "Jane",
		Email:   "jane@example.com",
		Message: "hello",
		Status:  models.ContactStatusPending,
	}
	s.Require().NoError(s.contacts.CreateContact(s.ctx, contact))
	s.NotEqual(uuid.Nil, contact.ID)

	s.Require().NoError(s.contacts.UpdateContactStatus(s.ctx, contact.ID, models.ContactStatusReplied))

	list, err := s.contacts.ListContacts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(models.ContactStatusReplied, list[0].Status)

	s.ErrorIs(s.contacts.UpdateContactStatus(s.ctx, uuid.New(), models.ContactStatusRead), models.ErrContactNotFound)
}

func (s *RepositoryIntegrationSuite) TestSessionRoundTripAndTTL() {
	session := &models.Session{
		Token:     "integrationtesttoken",
		UserID:    uuid.New(),
		Username:  "alice",
		Role:      models.RolePoster,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	s.Require().NoError(s.sessions.SaveSession(s.ctx, session))

	got, err := s.sessions.GetSession(s.ctx, session.Token)
	s.Require().NoError(err)
	s.Equal(session.Token, got.Token)
	s.Equal("alice", got.Username)
	s.Equal(session.UserID, got.UserID)

	ttl, err := s.redisClient.TTL(s.ctx, "session:"+session.Token).Result()
	s.Require().NoError(err)
	s.Greater(ttl, 55*time.Minute, "the redis TTL should track the session expiry")

	s.Require().NoError(s.sessions.DeleteSession(s.ctx, session.Token))
	_, err = s.sessions.GetSession(s.ctx, session.Token)
	s.ErrorIs(err, models.ErrSessionNotFound)

	s.NoError(s.sessions.DeleteSession(s.ctx, session.Token), "deleting an absent session is a no-op")
}

func (s *RepositoryIntegrationSuite) TestSaveSessionRejectsExpired() {
	session := &models.Session{
		Token:     "alreadyexpired",
		Username:  "alice",
		Role:      models.RolePoster,
		IssuedAt:  time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	s.Error(s.sessions.SaveSession(s.ctx, session))
}
