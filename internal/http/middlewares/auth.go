package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/internal/identity"
	model "task-tracker.com/task-tracker/internal/models"
)

const claimsKey = "auth.claims"

type CredentialResolver interface {
	Resolve(ctx context.Context, credential string) (identity.Claims, error)
}

type ProfileEnsurer interface {
	EnsureProfile(ctx context.Context, claims identity.Claims) (*model.User, error)
}

// Authenticate resolves the bearer credential and makes sure the caller has
// a profile before the handler runs.
func Authenticate(resolver CredentialResolver, profiles ProfileEnsurer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential, ok := bearerCredential(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return apperrors.ErrUnauthenticated
			}

			ctx := c.Request().Context()
			claims, err := resolver.Resolve(ctx, credential)
			if err != nil {
				return err
			}

			if _, err := profiles.EnsureProfile(ctx, claims); err != nil {
				return err
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// Claims returns the authenticated caller. It is empty on public routes.
func Claims(c echo.Context) identity.Claims {
	claims, _ := c.Get(claimsKey).(identity.Claims)
	return claims
}

func SubjectID(c echo.Context) string {
	return Claims(c).SubjectID
}

func bearerCredential(header string) (string, bool) {
	scheme, credential, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	credential = strings.TrimSpace(credential)
	return credential, credential != ""
}
