// Package credentials loads the external identity provider's service account
// and issues signed custom tokens with it. The provider is initialized
// exactly once during process startup and passed by handle to whatever needs
// it; there is no package-level singleton.
package credentials

import (
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenAudience is the verification endpoint custom tokens are minted for.
const tokenAudience = "https://identitytoolkit.googleapis.com/google.identity.identitytoolkit.v1.IdentityToolkit"

// serviceAccount is the on-disk shape of a service account credential file.
type serviceAccount struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
}

// Provider signs custom identity tokens with a service account key.
type Provider struct {
	projectID    string
	clientEmail  string
	privateKeyID string
	key          *rsa.PrivateKey
	tokenTTL     time.Duration
}

// Load reads and validates the service account file at path and returns a
// ready Provider. tokenTTL bounds the lifetime of issued tokens.
func Load(path string, tokenTTL time.Duration) (*Provider, error) {
	if tokenTTL <= 0 {
		return nil, errors.New("credentials: token ttl must be positive")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("credentials: read service account %q: %w", path, err)
	}

	var sa serviceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return nil, fmt.Errorf("credentials: parse service account %q: %w", path, err)
	}
	if sa.ClientEmail == "" || sa.PrivateKey == "" {
		return nil, fmt.Errorf("credentials: service account %q is missing client_email or private_key", path)
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(sa.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("credentials: parse private key: %w", err)
	}

	return &Provider{
		projectID:    sa.ProjectID,
		clientEmail:  sa.ClientEmail,
		privateKeyID: sa.PrivateKeyID,
		key:          key,
		tokenTTL:     tokenTTL,
	}, nil
}

// ProjectID returns the project the loaded service account belongs to.
func (p *Provider) ProjectID() string {
	return p.projectID
}

// IssueCustomToken mints an RS256-signed custom token asserting the given
// subject uid. The token expires after the provider's configured TTL.
func (p *Provider) IssueCustomToken(uid string) (token string, expiresAt time.Time, err error) {
	if uid == "" {
		return "", time.Time{}, errors.New("credentials: uid must not be empty")
	}

	now := time.Now()
	expiresAt = now.Add(p.tokenTTL)

	claims := jwt.MapClaims{
		"iss": p.clientEmail,
		"sub": p.clientEmail,
		"aud": tokenAudience,
		"uid": uid,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if p.privateKeyID != "" {
		t.Header["kid"] = p.privateKeyID
	}

	signed, err := t.SignedString(p.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("credentials: sign token: %w", err)
	}

	return signed, expiresAt, nil
}
