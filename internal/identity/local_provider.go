package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
)

// uidTokenPrefix marks a development credential of the form "id <uid>".
const uidTokenPrefix = "id "

type LocalOptions struct {
	Secret         []byte
	TokenTTL       time.Duration
	AllowUIDTokens bool
}

type tokenClaims struct {
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// LocalProvider keeps identities in the application database and issues
// HS256 tokens for them.
type LocalProvider struct {
	db   *gorm.DB
	opts LocalOptions
	now  func() time.Time
}

func NewLocalProvider(db *gorm.DB, opts LocalOptions) (*LocalProvider, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("identity: token secret must not be empty")
	}
	if opts.TokenTTL <= 0 {
		return nil, errors.New("identity: token ttl must be positive")
	}
	return &LocalProvider{db: db, opts: opts, now: time.Now}, nil
}

func (p *LocalProvider) Resolve(ctx context.Context, credential string) (Claims, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return Claims{}, apperrors.ErrUnauthenticated
	}

	if p.opts.AllowUIDTokens && strings.HasPrefix(credential, uidTokenPrefix) {
		return p.resolveUID(ctx, strings.TrimSpace(strings.TrimPrefix(credential, uidTokenPrefix)))
	}

	claims := &tokenClaims{}
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		return p.opts.Secret, nil
	}
	token, err := jwt.ParseWithClaims(credential, claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return Claims{}, apperrors.ErrUnauthenticated
	}

	// A revoked identity invalidates every token issued for it.
	if _, err := p.findByUID(ctx, claims.Subject); err != nil {
		return Claims{}, err
	}

	return Claims{
		SubjectID:   claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PictureURL:  claims.Picture,
	}, nil
}

func (p *LocalProvider) resolveUID(ctx context.Context, uid string) (Claims, error) {
	ident, err := p.findByUID(ctx, uid)
	if err != nil {
		return Claims{}, err
	}
	return claimsOf(ident), nil
}

func (p *LocalProvider) findByUID(ctx context.Context, uid string) (*model.Identity, error) {
	var ident model.Identity
	err := p.db.WithContext(ctx).First(&ident, "uid = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return &ident, nil
}

func (p *LocalProvider) CreateIdentity(ctx context.Context, email, password, displayName string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	if displayName == "" {
		displayName, _, _ = strings.Cut(email, "@")
	}

	ident := &model.Identity{
		UID:          uuid.NewString(),
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		DisplayName:  displayName,
	}
	if err := p.db.WithContext(ctx).Create(ident).Error; err != nil {
		return "", err
	}
	return ident.UID, nil
}

func (p *LocalProvider) FindByEmail(ctx context.Context, email string) (*model.Identity, error) {
	var ident model.Identity
	err := p.db.WithContext(ctx).First(&ident, "email = ?", strings.ToLower(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ident, nil
}

func (p *LocalProvider) DeleteIdentity(ctx context.Context, subjectID string) error {
	return p.db.WithContext(ctx).Delete(&model.Identity{}, "uid = ?", subjectID).Error
}

// Login checks the password and issues a signed token for the identity.
func (p *LocalProvider) Login(ctx context.Context, email, password string) (string, error) {
	ident, err := p.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if ident == nil {
		return "", apperrors.ErrInvalidLogin
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidLogin
	}
	return p.IssueToken(ident)
}

func (p *LocalProvider) IssueToken(ident *model.Identity) (string, error) {
	now := p.now()
	claims := tokenClaims{
		Email:   ident.Email,
		Name:    ident.DisplayName,
		Picture: ident.PhotoURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ident.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.opts.TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.opts.Secret)
}

func (p *LocalProvider) TokenTTL() time.Duration {
	return p.opts.TokenTTL
}

func claimsOf(ident *model.Identity) Claims {
	return Claims{
		SubjectID:   ident.UID,
		Email:       ident.Email,
		DisplayName: ident.DisplayName,
		PictureURL:  ident.PhotoURL,
	}
}
