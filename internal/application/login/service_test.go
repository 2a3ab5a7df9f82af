package login

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-auth-api/internal/domain"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	rediscache "github.com/go-auth-api/internal/infrastructure/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

type mockVerifier struct{ mock.Mock }

func (m *mockVerifier) Verify(ctx context.Context, token string) (*domain.ExternalIdentity, error) {
	args := m.Called(ctx, token)
	if id, _ := args.Get(0).(*domain.ExternalIdentity); id != nil {
		return id, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestService(t *testing.T, us *mockUserStore, iv *mockVerifier) (Service, *miniredis.Miniredis, *jwtinfra.Provider) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)
	cache := rediscache.NewCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	provider, err := jwtinfra.NewProvider("test-secret", time.Hour)
	require.NoError(t, err)
	svc := NewService(ServiceDeps{UserRepo: us, Cache: cache, Tokens: provider, Verifier: iv})
	return svc, mr, provider
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(h)
}

func verifiedAnn(t *testing.T) *domain.User {
	return &domain.User{
		UserID:       "u1",
		Name:         "Ann",
		LastName:     "Lee",
		Email:        "ann@x.com",
		PasswordHash: hashOf(t, "Secret1!"),
		IsVerified:   true,
		AuthProvider: domain.AuthProviderEmail,
	}
}

func TestLogin_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, domain.ErrNotFound)
	us.On("GetByEmail", mock.Anything, "ann@x.com").Return(verifiedAnn(t), nil)

	svc, _, _ := newTestService(t, us, &mockVerifier{})

	unknown := svc.Login(context.Background(), "ghost@x.com", "Secret1!")
	wrongPass := svc.Login(context.Background(), "ann@x.com", "WrongPass")

	assert.Equal(t, unknown, wrongPass)
	assert.Equal(t, http.StatusUnauthorized, unknown.Status)
}

func TestLogin_Success(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ann@x.com").Return(verifiedAnn(t), nil)

	svc, _, provider := newTestService(t, us, &mockVerifier{})
	res := svc.Login(context.Background(), "ann@x.com", "Secret1!")

	require.True(t, res.Success)
	require.NotNil(t, res.User)
	assert.Equal(t, "ann@x.com", res.User.Email)

	claims, err := provider.VerifyAccessToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "Ann", claims.Name)
}

func TestLogin_UnverifiedReportsRemainingTime(t *testing.T) {
	us := &mockUserStore{}
	u := verifiedAnn(t)
	u.IsVerified = false
	us.On("GetByEmail", mock.Anything, "ann@x.com").Return(u, nil)

	svc, mr, _ := newTestService(t, us, &mockVerifier{})
	mr.Set("verification:ann@x.com", "ABC123")
	mr.SetTTL("verification:ann@x.com", 5*time.Minute)

	res := svc.Login(context.Background(), "ann@x.com", "Secret1!")

	assert.False(t, res.Success)
	assert.Equal(t, domain.CodeVerificationPending, res.Error)
	data, ok := res.Data.(domain.PendingVerification)
	require.True(t, ok)
	assert.Equal(t, int64(300), data.RemainingTime)
	assert.Empty(t, res.Token)
}

func TestLogin_UnverifiedWithoutLiveCode(t *testing.T) {
	us := &mockUserStore{}
	u := verifiedAnn(t)
	u.IsVerified = false
	us.On("GetByEmail", mock.Anything, "ann@x.com").Return(u, nil)

	svc, _, _ := newTestService(t, us, &mockVerifier{})
	res := svc.Login(context.Background(), "ann@x.com", "Secret1!")

	data, ok := res.Data.(domain.PendingVerification)
	require.True(t, ok)
	assert.Equal(t, int64(0), data.RemainingTime)
}

func TestLogin_OldPasswordFailsAfterReset(t *testing.T) {
	us := &mockUserStore{}
	u := verifiedAnn(t)
	u.PasswordHash = hashOf(t, "NewPass1!")
	us.On("GetByEmail", mock.Anything, "ann@x.com").Return(u, nil)

	svc, _, _ := newTestService(t, us, &mockVerifier{})

	assert.Equal(t, "Invalid email or password.", svc.Login(context.Background(), "ann@x.com", "Secret1!").Message)
	assert.True(t, svc.Login(context.Background(), "ann@x.com", "NewPass1!").Success)
}

func TestLoginWithGoogle_BadToken(t *testing.T) {
	iv := &mockVerifier{}
	iv.On("Verify", mock.Anything, "bad-token").Return(nil, assert.AnError)

	svc, _, _ := newTestService(t, &mockUserStore{}, iv)
	res := svc.LoginWithGoogle(context.Background(), "bad-token")

	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "Google authentication failed.", res.Message)
}

func TestLoginWithGoogle_ExistingUser(t *testing.T) {
	iv := &mockVerifier{}
	iv.On("Verify", mock.Anything, "google-token").
		Return(&domain.ExternalIdentity{Email: "ann@x.com", GivenName: "Ann", LastName: "Lee"}, nil)
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ann@x.com").Return(verifiedAnn(t), nil)

	svc, _, _ := newTestService(t, us, iv)
	res := svc.LoginWithGoogle(context.Background(), "google-token")

	require.True(t, res.Success)
	assert.NotEmpty(t, res.Token)
	us.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginWithGoogle_AutoRegistersNewUser(t *testing.T) {
	iv := &mockVerifier{}
	iv.On("Verify", mock.Anything, "google-token").
		Return(&domain.ExternalIdentity{Email: "new@x.com", GivenName: "New", LastName: "User"}, nil)
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "new@x.com").Return(nil, domain.ErrNotFound)
	var created *domain.User
	us.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.User) }).
		Return(nil)

	svc, _, _ := newTestService(t, us, iv)
	res := svc.LoginWithGoogle(context.Background(), "google-token")

	require.True(t, res.Success)
	assert.NotEmpty(t, res.Token)
	require.NotNil(t, created)
	assert.True(t, created.IsVerified)
	assert.Equal(t, domain.AuthProviderGoogle, created.AuthProvider)
	assert.NotEmpty(t, created.PasswordHash)
}

func TestLoginWithGoogle_RaceLoserFallsBackToLookup(t *testing.T) {
	iv := &mockVerifier{}
	iv.On("Verify", mock.Anything, "google-token").
		Return(&domain.ExternalIdentity{Email: "ann@x.com", GivenName: "Ann", LastName: "Lee"}, nil)
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ann@x.com").Return(nil, domain.ErrNotFound).Once()
	us.On("Create", mock.Anything, mock.Anything).Return(domain.ErrConflict)
	us.On("GetByEmail", mock.Anything, "ann@x.com").Return(verifiedAnn(t), nil)

	svc, _, _ := newTestService(t, us, iv)
	res := svc.LoginWithGoogle(context.Background(), "google-token")

	require.True(t, res.Success)
	assert.NotEmpty(t, res.Token)
	us.AssertExpectations(t)
}
