// Package local is a self-hosted identity provider: bcrypt password hashes,
// HS256 access/refresh tokens and revocable session rows in PostgreSQL.
package local

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"file-manager-api/internal/domain/identity"
	"file-manager-api/internal/infrastructure/db/postgres"
	"file-manager-api/internal/infrastructure/jwt"
)

const (
	accessTTL  = time.Hour
	refreshTTL = 7 * 24 * time.Hour
)

var hashCost = bcrypt.DefaultCost

type Provider struct {
	db     postgres.DB
	tokens *jwt.Service
}

func New(db postgres.DB, tokens *jwt.Service) identity.Provider {
	return &Provider{db: db, tokens: tokens}
}

func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func (p *Provider) SignUp(ctx context.Context, email, password string) (*identity.Identity, error) {
	email = normalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", identity.ErrSignUpRejected, err)
	}

	id := uuid.New().String()
	if _, err = p.db.Exec(ctx, InsertIdentity, id, email, string(hash)); err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email already registered", identity.ErrSignUpRejected)
		}
		return nil, err
	}

	return &identity.Identity{ID: id, Email: email}, nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (*identity.Identity, *identity.Session, error) {
	var (
		id   string
		mail string
		hash string
	)
	email = normalizeEmail(email)
	if err := p.db.QueryRow(ctx, SelectIdentityByEmail, email).Scan(&id, &mail, &hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, identity.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, nil, identity.ErrInvalidCredentials
	}

	sessionID := uuid.New().String()
	if _, err := p.db.Exec(ctx, InsertSession, sessionID, id, time.Now().Add(refreshTTL)); err != nil {
		return nil, nil, err
	}

	access, err := p.tokens.GenerateJWT(id, mail, sessionID, jwt.TokenTypeAccess, accessTTL)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := p.tokens.GenerateJWT(id, mail, sessionID, jwt.TokenTypeRefresh, refreshTTL)
	if err != nil {
		return nil, nil, err
	}

	return &identity.Identity{ID: id, Email: mail},
		&identity.Session{AccessToken: access, RefreshToken: refresh},
		nil
}

func (p *Provider) SignOut(ctx context.Context, accessToken string) error {
	claims, err := p.tokens.ValidateToken(accessToken, jwt.TokenTypeAccess)
	if err != nil {
		return identity.ErrInvalidToken
	}

	_, err = p.db.Exec(ctx, RevokeSession, claims.ID)
	return err
}

func (p *Provider) Verify(ctx context.Context, accessToken string) (*identity.Identity, error) {
	claims, err := p.tokens.ValidateToken(accessToken, jwt.TokenTypeAccess)
	if err != nil {
		return nil, identity.ErrInvalidToken
	}

	var id, email string
	if err = p.db.QueryRow(ctx, SelectActiveSession, claims.ID).Scan(&id, &email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrInvalidToken
		}
		return nil, err
	}
	if id != claims.Subject {
		return nil, identity.ErrInvalidToken
	}

	return &identity.Identity{ID: id, Email: email}, nil
}

func (p *Provider) Delete(ctx context.Context, identityID string) error {
	tag, err := p.db.Exec(ctx, DeleteIdentityByID, identityID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return identity.ErrNotFound
	}

	return nil
}
