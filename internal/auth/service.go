package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wejdenmesaoud/cashback/internal/users"
	pkgauth "github.com/wejdenmesaoud/cashback/pkg/auth"
	"github.com/wejdenmesaoud/cashback/pkg/config"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	"github.com/wejdenmesaoud/cashback/pkg/enums"
	pkgerrors "github.com/wejdenmesaoud/cashback/pkg/errors"
	"github.com/wejdenmesaoud/cashback/pkg/metrics"
	"github.com/wejdenmesaoud/cashback/pkg/security"
	"gorm.io/gorm"
)

const (
	badCredentialsMessage  = "Bad credentials"
	usernameTakenMessage   = "Error: Username is already taken!"
	emailInUseMessage      = "Error: Email is already in use!"
	registeredMessage      = "User registered successfully!"
	signedOutMessage       = "User signed out successfully!"
	roleNotFoundMessageFmt = "Error: Role %s is not found."
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Signin(ctx context.Context, req SigninRequest) (*SigninResponse, error)
	Signup(ctx context.Context, req SignupRequest) (*MessageResponse, error)
	Signout(ctx context.Context, username string) *MessageResponse
}

type service struct {
	users       userRepository
	sessions    sessionTracker
	authMetrics *metrics.AuthMetrics
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

type userRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindRoleByName(ctx context.Context, name enums.RoleName) (*models.Role, error)
}

type sessionTracker interface {
	Record(subject string)
	Remove(subject string)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionTracker sessionTracker
	AuthMetrics    *metrics.AuthMetrics
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionTracker == nil {
		return nil, fmt.Errorf("session tracker is required")
	}
	return &service{
		users:       params.UserRepo,
		sessions:    params.SessionTracker,
		authMetrics: params.AuthMetrics,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) Signin(ctx context.Context, req SigninRequest) (*SigninResponse, error) {
	started := time.Now()
	defer func() {
		s.authMetrics.ObserveDuration("signin", time.Since(started))
	}()

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		s.authMetrics.IncLoginFailure("bad_credentials")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, badCredentialsMessage)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.authMetrics.IncLoginFailure("unknown_user")
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, badCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeServerError, err, "lookup user")
	}

	valid, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeServerError, err, "verify password")
	}
	if !valid {
		s.authMetrics.IncLoginFailure("bad_credentials")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, badCredentialsMessage)
	}

	token, err := pkgauth.Mint(s.jwtCfg, time.Now().UTC(), user.Username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeServerError, err, "mint jwt")
	}

	s.sessions.Record(user.Username)
	s.authMetrics.IncLoginSuccess()

	return &SigninResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Roles:       user.RoleNames(),
	}, nil
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (*MessageResponse, error) {
	started := time.Now()
	defer func() {
		s.authMetrics.ObserveDuration("signup", time.Since(started))
	}()

	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeServerError, err, "check username")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeDuplicate, usernameTakenMessage)
	}

	inUse, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeServerError, err, "check email")
	}
	if inUse {
		return nil, pkgerrors.New(pkgerrors.CodeDuplicate, emailInUseMessage)
	}

	roles, err := s.resolveRoles(ctx, req.Roles)
	if err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeServerError, err, "hash password")
	}

	_, err = s.users.Create(ctx, users.CreateUserDTO{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Roles:        roles,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeServerError, err, "create user")
	}

	s.authMetrics.IncRegistration()
	return &MessageResponse{Message: registeredMessage}, nil
}

// Signout clears the caller's active-session entry. Tokens stay valid until
// expiry; there is no server-side revocation.
func (s *service) Signout(ctx context.Context, username string) *MessageResponse {
	if username != "" {
		s.sessions.Remove(username)
	}
	return &MessageResponse{Message: signedOutMessage}
}

// resolveRoles maps wire aliases onto role rows. Unknown aliases fall back to
// USER, matching the registration contract.
func (s *service) resolveRoles(ctx context.Context, requested []string) ([]models.Role, error) {
	names := make(map[enums.RoleName]struct{})
	if len(requested) == 0 {
		names[enums.RoleUser] = struct{}{}
	}
	for _, alias := range requested {
		switch strings.ToLower(strings.TrimSpace(alias)) {
		case "admin":
			names[enums.RoleAdmin] = struct{}{}
		case "mod":
			names[enums.RoleModerator] = struct{}{}
		default:
			names[enums.RoleUser] = struct{}{}
		}
	}

	roles := make([]models.Role, 0, len(names))
	for _, name := range enums.RoleNames() {
		if _, ok := names[name]; !ok {
			continue
		}
		role, err := s.users.FindRoleByName(ctx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeServerError, fmt.Sprintf(roleNotFoundMessageFmt, name))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeServerError, err, "lookup role")
		}
		roles = append(roles, *role)
	}
	return roles, nil
}
