package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/internal/identity"
	model "task-tracker.com/task-tracker/internal/models"
)

type stubResolver struct {
	claims identity.Claims
	err    error
	seen   string
}

func (s *stubResolver) Resolve(ctx context.Context, credential string) (identity.Claims, error) {
	s.seen = credential
	return s.claims, s.err
}

type stubProfiles struct {
	err     error
	ensured []string
}

func (s *stubProfiles) EnsureProfile(ctx context.Context, claims identity.Claims) (*model.User, error) {
	s.ensured = append(s.ensured, claims.SubjectID)
	if s.err != nil {
		return nil, s.err
	}
	return &model.User{ID: claims.SubjectID}, nil
}

func serve(t *testing.T, mw echo.MiddlewareFunc, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })(c)
	return c, err
}

func TestAuthenticate(t *testing.T) {
	resolver := &stubResolver{claims: identity.Claims{SubjectID: "u1"}}
	profiles := &stubProfiles{}
	mw := Authenticate(resolver, profiles)

	c, err := serve(t, mw, "Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", resolver.seen)
	assert.Equal(t, "u1", SubjectID(c))
	assert.Equal(t, []string{"u1"}, profiles.ensured)
}

func TestAuthenticate_UIDCredentialPassesThrough(t *testing.T) {
	resolver := &stubResolver{claims: identity.Claims{SubjectID: "u9"}}
	_, err := serve(t, Authenticate(resolver, &stubProfiles{}), "Bearer id u9")
	require.NoError(t, err)
	assert.Equal(t, "id u9", resolver.seen)
}

func TestAuthenticate_Rejects(t *testing.T) {
	for _, header := range []string{"", "Basic abc", "Bearer ", "Bearer"} {
		_, err := serve(t, Authenticate(&stubResolver{}, &stubProfiles{}), header)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated, header)
	}

	_, err := serve(t, Authenticate(&stubResolver{err: apperrors.ErrUnauthenticated}, &stubProfiles{}), "Bearer bad")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	profiles := &stubProfiles{err: apperrors.ErrProfileRemoved}
	_, err = serve(t, Authenticate(&stubResolver{claims: identity.Claims{SubjectID: "gone"}}, profiles), "Bearer ok")
	assert.ErrorIs(t, err, apperrors.ErrProfileRemoved)
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	mw := rateLimiter(2, time.Minute, func(echo.Context) string { return "k" }, clock)

	for i := 0; i < 2; i++ {
		_, err := serve(t, mw, "")
		require.NoError(t, err)
	}

	c, err := serve(t, mw, "")
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)
	assert.Equal(t, "60", c.Response().Header().Get("Retry-After"))

	now = now.Add(time.Minute + time.Second)
	_, err = serve(t, mw, "")
	assert.NoError(t, err)
}

func TestRateLimiter_ByIPIgnoresSubject(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mw := rateLimiter(1, time.Minute, ByIP, func() time.Time { return now })

	_, err := serve(t, mw, "")
	require.NoError(t, err)

	_, err = serve(t, mw, "Bearer anything")
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)
}

func TestRateLimiter_Disabled(t *testing.T) {
	mw := RateLimiter(0, time.Minute, ByCaller)
	for i := 0; i < 5; i++ {
		_, err := serve(t, mw, "")
		require.NoError(t, err)
	}
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	c, err := serve(t, RequestLogger(zap.NewNop()), "")
	require.NoError(t, err)
	assert.NotEmpty(t, c.Response().Header().Get(echo.HeaderXRequestID))
}
