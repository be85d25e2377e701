package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wejdenmesaoud/cashback/internal/users"
	"github.com/wejdenmesaoud/cashback/pkg/config"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	"github.com/wejdenmesaoud/cashback/pkg/enums"
	pkgerrors "github.com/wejdenmesaoud/cashback/pkg/errors"
	"github.com/wejdenmesaoud/cashback/pkg/security"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byUsername map[string]*models.User
	emails     map[string]bool
	roles      map[enums.RoleName]*models.Role
	created    []users.CreateUserDTO
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byUsername: map[string]*models.User{},
		emails:     map[string]bool{},
		roles: map[enums.RoleName]*models.Role{
			enums.RoleUser:      {ID: 1, Name: string(enums.RoleUser)},
			enums.RoleModerator: {ID: 2, Name: string(enums.RoleModerator)},
			enums.RoleAdmin:     {ID: 3, Name: string(enums.RoleAdmin)},
		},
	}
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := f.byUsername[username]
	return ok, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return f.emails[email], nil
}

func (f *fakeUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	f.created = append(f.created, dto)
	user := dto.ToModel()
	user.ID = int64(len(f.created))
	f.byUsername[dto.Username] = user
	f.emails[dto.Email] = true
	return user, nil
}

func (f *fakeUserRepo) FindRoleByName(_ context.Context, name enums.RoleName) (*models.Role, error) {
	role, ok := f.roles[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return role, nil
}

type fakeTracker struct {
	recorded []string
	removed  []string
}

func (f *fakeTracker) Record(subject string) { f.recorded = append(f.recorded, subject) }
func (f *fakeTracker) Remove(subject string) { f.removed = append(f.removed, subject) }

func newTestService(t *testing.T, repo *fakeUserRepo, tracker *fakeTracker) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionTracker: tracker,
		JWTConfig: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "cashback-test",
			ExpirationMinutes: 60,
		},
	})
	require.NoError(t, err)
	return svc
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, email, password string, roles ...enums.RoleName) {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	require.NoError(t, err)
	user := &models.User{ID: 1, Username: username, Email: email, PasswordHash: hash}
	for _, name := range roles {
		user.Roles = append(user.Roles, *repo.roles[name])
	}
	repo.byUsername[username] = user
	repo.emails[email] = true
}

func TestSignin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	tracker := &fakeTracker{}
	seedUser(t, repo, "alice", "alice@example.com", "s3cret99", enums.RoleUser, enums.RoleModerator)
	svc := newTestService(t, repo, tracker)

	resp, err := svc.Signin(context.Background(), SigninRequest{Username: "alice", Password: "s3cret99"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.ElementsMatch(t, []string{"USER", "MODERATOR"}, resp.Roles)
	assert.Len(t, strings.Split(resp.AccessToken, "."), 3)
	assert.Equal(t, []string{"alice"}, tracker.recorded)
}

func TestSignin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	tracker := &fakeTracker{}
	seedUser(t, repo, "alice", "alice@example.com", "s3cret99", enums.RoleUser)
	svc := newTestService(t, repo, tracker)

	_, err := svc.Signin(context.Background(), SigninRequest{Username: "alice", Password: "wrong"})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
	assert.Equal(t, "Bad credentials", appErr.Message())
	assert.Empty(t, tracker.recorded)
}

func TestSignin_UnknownUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo, &fakeTracker{})

	_, err := svc.Signin(context.Background(), SigninRequest{Username: "ghost", Password: "whatever"})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestSignup_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo, &fakeTracker{})

	resp, err := svc.Signup(context.Background(), SignupRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "s3cret99",
		Roles:    []string{"mod"},
	})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully!", resp.Message)

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	require.Len(t, created.Roles, 1)
	assert.Equal(t, "MODERATOR", created.Roles[0].Name)
	assert.NotEqual(t, "s3cret99", created.PasswordHash)
}

func TestSignup_DefaultsToUserRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo, &fakeTracker{})

	_, err := svc.Signup(context.Background(), SignupRequest{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "s3cret99",
		Roles:    []string{"superuser"},
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	require.Len(t, repo.created[0].Roles, 1)
	assert.Equal(t, "USER", repo.created[0].Roles[0].Name)
}

func TestSignup_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "alice", "alice@example.com", "s3cret99", enums.RoleUser)
	svc := newTestService(t, repo, &fakeTracker{})

	_, err := svc.Signup(context.Background(), SignupRequest{
		Username: "alice",
		Email:    "new@example.com",
		Password: "s3cret99",
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDuplicate, appErr.Code())
	assert.Equal(t, "Error: Username is already taken!", appErr.Message())
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "alice", "alice@example.com", "s3cret99", enums.RoleUser)
	svc := newTestService(t, repo, &fakeTracker{})

	_, err := svc.Signup(context.Background(), SignupRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "s3cret99",
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "Error: Email is already in use!", appErr.Message())
}

func TestSignout(t *testing.T) {
	repo := newFakeUserRepo()
	tracker := &fakeTracker{}
	svc := newTestService(t, repo, tracker)

	resp := svc.Signout(context.Background(), "alice")
	assert.Equal(t, "User signed out successfully!", resp.Message)
	assert.Equal(t, []string{"alice"}, tracker.removed)

	resp = svc.Signout(context.Background(), "")
	assert.Equal(t, "User signed out successfully!", resp.Message)
	assert.Len(t, tracker.removed, 1)
}
