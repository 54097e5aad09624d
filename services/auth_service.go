package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kendall-kelly/furniture-portal-api/models"
)

// Role is the kind of account a token was issued to
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// TokenClaims are the claims of an access token
type TokenClaims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed access token
type IssuedToken struct {
	Token     string    `json:"token"`
	ID        string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenIssuer signs HS256 access tokens
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewTokenIssuer(secret, issuer, audience string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue signs a token for subject
func (t *TokenIssuer) Issue(subject string, role Role, name string) (IssuedToken, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)
	id := uuid.New().String()

	claims := TokenClaims{
		Role: string(role),
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{t.audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        id,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return IssuedToken{Token: signed, ID: id, ExpiresAt: expiresAt}, nil
}

// RevocationList remembers logged-out token ids until they expire
type RevocationList struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewRevocationList() *RevocationList {
	return &RevocationList{entries: make(map[string]time.Time), now: time.Now}
}

// Revoke marks a token id revoked until expiresAt
func (l *RevocationList) Revoke(tokenID string, expiresAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[tokenID] = expiresAt
	l.pruneLocked()
}

// IsRevoked reports whether a token id was revoked and has not yet expired
func (l *RevocationList) IsRevoked(tokenID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pruneLocked()
	_, revoked := l.entries[tokenID]
	return revoked
}

func (l *RevocationList) pruneLocked() {
	now := l.now()
	for id, expiresAt := range l.entries {
		if !expiresAt.After(now) {
			delete(l.entries, id)
		}
	}
}

// Session is the result of a successful login
type Session struct {
	IssuedToken
	Role   Role           `json:"role"`
	Client *models.Client `json:"client,omitempty"`
	Admin  *models.Admin  `json:"admin,omitempty"`
}

// AuthService authenticates clients and admins and tracks logouts
type AuthService struct {
	clients *ClientRepository
	admins  *AdminRepository
	issuer  *TokenIssuer
	revoked *RevocationList
}

func NewAuthService(clients *ClientRepository, admins *AdminRepository, issuer *TokenIssuer, revoked *RevocationList) *AuthService {
	return &AuthService{clients: clients, admins: admins, issuer: issuer, revoked: revoked}
}

// LoginClient authenticates a client by username and password
func (s *AuthService) LoginClient(username, password string) (Session, error) {
	client, ok := s.clients.Authenticate(username, password)
	if !ok {
		return Session{}, ErrInvalidCredentials
	}
	token, err := s.issuer.Issue(client.ID, RoleClient, client.Name)
	if err != nil {
		return Session{}, err
	}
	sanitized := client.Sanitized()
	return Session{IssuedToken: token, Role: RoleClient, Client: &sanitized}, nil
}

// LoginAdmin authenticates an administrator by username and password
func (s *AuthService) LoginAdmin(username, password string) (Session, error) {
	admin, ok := s.admins.Authenticate(username, password)
	if !ok {
		return Session{}, ErrInvalidCredentials
	}
	token, err := s.issuer.Issue(admin.ID, RoleAdmin, admin.Name)
	if err != nil {
		return Session{}, err
	}
	sanitized := admin.Sanitized()
	return Session{IssuedToken: token, Role: RoleAdmin, Admin: &sanitized}, nil
}

// Logout revokes a token until its expiry
func (s *AuthService) Logout(tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return errors.New("token has no id")
	}
	s.revoked.Revoke(tokenID, expiresAt)
	return nil
}

// IsRevoked reports whether a token id has been logged out
func (s *AuthService) IsRevoked(tokenID string) bool {
	return s.revoked.IsRevoked(tokenID)
}

// AccountExists reports whether subject is still a live account of role
func (s *AuthService) AccountExists(role, subject string) bool {
	_, ok := s.CurrentIdentity(Role(role), subject)
	return ok
}

// CurrentIdentity resolves the account behind a token subject
func (s *AuthService) CurrentIdentity(role Role, subject string) (Session, bool) {
	switch role {
	case RoleClient:
		client, ok := s.clients.GetByID(subject)
		if !ok {
			return Session{}, false
		}
		sanitized := client.Sanitized()
		return Session{Role: RoleClient, Client: &sanitized}, true
	case RoleAdmin:
		admin, ok := s.admins.GetByID(subject)
		if !ok {
			return Session{}, false
		}
		sanitized := admin.Sanitized()
		return Session{Role: RoleAdmin, Admin: &sanitized}, true
	default:
		return Session{}, false
	}
}
