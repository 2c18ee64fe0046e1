package identity

import (
	"context"

	model "task-tracker.com/task-tracker/internal/models"
)

// Claims is what a verified credential says about its subject.
type Claims struct {
	SubjectID   string
	Email       string
	DisplayName string
	PictureURL  string
}

// Provider is the identity boundary: credential verification plus the admin
// operations used to provision and revoke identities.
type Provider interface {
	Resolve(ctx context.Context, credential string) (Claims, error)
	CreateIdentity(ctx context.Context, email, password, displayName string) (string, error)
	// FindByEmail returns nil, nil when no identity has that email.
	FindByEmail(ctx context.Context, email string) (*model.Identity, error)
	DeleteIdentity(ctx context.Context, subjectID string) error
}
