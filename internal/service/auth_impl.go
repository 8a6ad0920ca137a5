package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"abyss-server/internal/config"
	"abyss-server/internal/models"
	"abyss-server/internal/repository"
)

// XP bonuses mirrored from the original site behavior.
const (
	registrationXP = 50
	loginXP        = 10
)

const defaultAvatar = "🌀"

// Compile-time check to ensure authServiceImpl implements AuthService
var _ AuthService = (*authServiceImpl)(nil)

type authServiceImpl struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
	logger      *zap.Logger
}

// NewAuthService creates a new instance of authServiceImpl.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg *config.Config, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		logger:      logger.Named("AuthService"),
	}
}

// Register creates a new unapproved user.
func (s *authServiceImpl) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	logFields := []zap.Field{zap.String("username", username), zap.String("email", email)}
	s.logger.Info("Registering new user", logFields...)

	if username == "" || password == "" {
		s.logger.Warn("Registration attempt with empty username or password", logFields...)
		return nil, fmt.Errorf("username and password are required: %w", models.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		s.logger.Warn("Registration attempt with invalid email format", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("invalid email format: %w", models.ErrInvalidInput)
	}

	// The bootstrap admin identity is reserved; it never has a user row.
	if username == s.cfg.AdminUsername {
		s.logger.Warn("Registration attempt for reserved admin username", logFields...)
		return nil, models.ErrUserAlreadyExists
	}

	existing, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		s.logger.Error("Error checking existing username during registration", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("error checking existing username: %w", err)
	}
	if existing != nil {
		s.logger.Warn("Registration attempt for existing username", logFields...)
		return nil, models.ErrUserAlreadyExists
	}

	existing, err = s.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		s.logger.Error("Error checking existing email during registration", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("error checking existing email: %w", err)
	}
	if existing != nil {
		s.logger.Warn("Registration attempt for existing email", logFields...)
		return nil, models.ErrEmailAlreadyExists
	}

	hashed, err := hashPassword(password, s.cfg.PasswordPepper)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RolePoster,
		Approved:     false,
		Avatar:       defaultAvatar,
		XP:           registrationXP,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		// Uniqueness races surface here as the duplicate sentinels.
		if !errors.Is(err, models.ErrUserAlreadyExists) && !errors.Is(err, models.ErrEmailAlreadyExists) {
			s.logger.Error("Failed to create user via repository", append(logFields, zap.Error(err))...)
		}
		return nil, err
	}

	s.logger.Info("User registered, pending approval", zap.String("userID", user.ID.String()), zap.String("username", user.Username))
	return user, nil
}

// Login authenticates a user and mints a session token.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	s.logger.Info("Login attempt", zap.String("username", username))

	if username == s.cfg.AdminUsername {
		return s.loginBootstrapAdmin(ctx, username, password)
	}

	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			// Same outcome as a wrong password, to avoid enumeration.
			s.logger.Warn("Login failed: user not found", zap.String("username", username))
			return nil, models.ErrInvalidCredentials
		}
		s.logger.Error("Login failed: error getting user from repository", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !checkPasswordHash(password, user.PasswordHash, s.cfg.PasswordPepper) {
		s.logger.Warn("Login failed: invalid password", zap.String("username", username))
		return nil, models.ErrInvalidCredentials
	}

	if !user.Approved {
		s.logger.Warn("Login failed: account pending approval", zap.String("username", username))
		return nil, models.ErrPendingApproval
	}

	now := time.Now()
	streak := nextStreak(user.LastLogin, user.StreakDays, now)
	xp := user.XP + loginXP
	if err := s.userRepo.RecordLogin(ctx, user.Username, now, loginXP, streak); err != nil {
		// Bookkeeping only; the login itself still proceeds, but the
		// result must reflect the XP the store actually holds.
		s.logger.Error("Failed to record login stats", zap.Error(err), zap.String("username", username))
		xp = user.XP
	}

	session, err := s.mintSession(ctx, user.ID, user.Username, user.Role, now)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", zap.String("username", username), zap.String("role", user.Role))
	return &LoginResult{
		Token:    session.Token,
		Username: user.Username,
		Role:     user.Role,
		XP:       xp,
		Level:    xp/100 + 1,
	}, nil
}

// loginBootstrapAdmin handles the distinguished admin account whose bcrypt
// digest is supplied out of band. It is always approved and has no user row.
func (s *authServiceImpl) loginBootstrapAdmin(ctx context.Context, username, password string) (*LoginResult, error) {
	if s.cfg.AdminPasswordHash == "" || !checkPasswordHash(password, s.cfg.AdminPasswordHash, s.cfg.PasswordPepper) {
		s.logger.Warn("Login failed: invalid bootstrap admin credentials")
		return nil, models.ErrInvalidCredentials
	}

	session, err := s.mintSession(ctx, uuid.Nil, username, models.RoleAdmin, time.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("Bootstrap admin logged in")
	return &LoginResult{
		Token:    session.Token,
		Username: username,
		Role:     models.RoleAdmin,
		Level:    1,
	}, nil
}

func (s *authServiceImpl) mintSession(ctx context.Context, userID uuid.UUID, username, role string, now time.Time) (*models.Session, error) {
	token, err := generateSessionToken()
	if err != nil {
		s.logger.Error("Failed to generate session token", zap.Error(err))
		return nil, err
	}

	session := &models.Session{
		Token:     token,
		UserID:    userID,
		Username:  username,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}

	if err := s.sessionRepo.SaveSession(ctx, session); err != nil {
		s.logger.Error("Failed to save session via repository", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// Verify resolves a bearer token to its principal.
func (s *authServiceImpl) Verify(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, models.ErrUnauthorized
	}

	session, err := s.sessionRepo.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("Failed to get session from repository", zap.Error(err))
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.Expired(time.Now()) {
		// Lazy expiry: reap the session on detection, best effort.
		if err := s.sessionRepo.DeleteSession(ctx, token); err != nil {
			s.logger.Warn("Failed to delete expired session", zap.Error(err))
		}
		s.logger.Debug("Rejected expired session", zap.String("username", session.Username))
		return nil, models.ErrSessionExpired
	}

	return s.resolvePrincipal(ctx, session)
}

// resolvePrincipal re-reads the user's role on every request so that an
// admin demotion or deletion takes effect before the session expires. The
// bootstrap admin has no user row, its snapshot role is authoritative.
func (s *authServiceImpl) resolvePrincipal(ctx context.Context, session *models.Session) (*Principal, error) {
	if session.Username == s.cfg.AdminUsername {
		return &Principal{
			Username:    session.Username,
			DisplayName: session.Username,
			Role:        models.RoleAdmin,
		}, nil
	}

	user, err := s.userRepo.GetUserByUsername(ctx, session.Username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			// The account was deleted out from under the session.
			if delErr := s.sessionRepo.DeleteSession(ctx, session.Token); delErr != nil {
				s.logger.Warn("Failed to delete orphaned session", zap.Error(delErr))
			}
			s.logger.Warn("Session references a deleted user", zap.String("username", session.Username))
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("Failed to resolve user for session", zap.Error(err), zap.String("username", session.Username))
		return nil, fmt.Errorf("failed to resolve session user: %w", err)
	}

	return &Principal{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.Name(),
		Role:        user.Role,
	}, nil
}

// Authorize verifies the token and checks the live role against the
// accepted set.
func (s *authServiceImpl) Authorize(ctx context.Context, token string, roles ...string) (*Principal, error) {
	principal, err := s.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	if !models.RoleAllowed(principal.Role, roles) {
		s.logger.Warn("Authorization denied: insufficient role",
			zap.String("username", principal.Username),
			zap.String("role", principal.Role),
			zap.Strings("accepted", roles),
		)
		return nil, models.ErrForbidden
	}
	return principal, nil
}

// Logout deletes the session. Logging out a token that never existed, or
// twice, succeeds silently.
func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessionRepo.DeleteSession(ctx, token); err != nil {
		// Best effort: the token may already be gone, and a storage
		// hiccup must not turn logout into an error for the client.
		s.logger.Error("Failed to delete session during logout", zap.Error(err))
	}
	return nil
}

// nextStreak computes the consecutive-day login streak. Same UTC day keeps
// the streak, the immediately following day extends it, any gap resets it.
func nextStreak(lastLogin *time.Time, current int, now time.Time) int {
	if lastLogin == nil {
		return 1
	}
	prevDay := lastLogin.UTC().Truncate(24 * time.Hour)
	nowDay := now.UTC().Truncate(24 * time.Hour)
	switch nowDay.Sub(prevDay) {
	case 0:
		if current < 1 {
			return 1
		}
		return current
	case 24 * time.Hour:
		return current + 1
	default:
		return 1
	}
}
