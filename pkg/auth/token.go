package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers malformed, expired and wrongly signed tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingToken is returned when a request carries no token at all.
	ErrMissingToken = errors.New("missing token")
)

// Claims are the access-token claims issued by the identity provider.
// Subject carries the user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// downloadClaims authorize fetching one stored object.
type downloadClaims struct {
	Bucket string `json:"bkt"`
	Key    string `json:"key"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Download identifies an object a signed URL grants access to.
type Download struct {
	Bucket string
	Key    string
	Name   string
}

const downloadAudience = "download"

// Tokens verifies access tokens and signs short-lived download tokens (HS256).
type Tokens struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokens creates Tokens. An empty issuer disables the issuer check.
func NewTokens(secret, issuer string) *Tokens {
	return &Tokens{secret: []byte(secret), issuer: issuer, now: time.Now}
}

func (t *Tokens) keyFunc(tok *jwt.Token) (any, error) {
	return t.secret, nil
}

func (t *Tokens) parserOptions() []jwt.ParserOption {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}
	return opts
}

// Verify parses an access token and returns its claims.
func (t *Tokens) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, t.keyFunc, t.parserOptions()...)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}
	if audienceContains(claims.Audience, downloadAudience) {
		return nil, fmt.Errorf("%w: download token used as access token", ErrInvalidToken)
	}
	return claims, nil
}

// VerifyUserID returns the user id of a valid access token.
func (t *Tokens) VerifyUserID(token string) (string, error) {
	claims, err := t.Verify(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Issue signs an access token for userID. Used by tests and local tooling;
// production tokens come from the identity provider.
func (t *Tokens) Issue(userID, email string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := &Claims{
		Email: email,
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// SignDownload returns a token granting access to one object until ttl elapses.
func (t *Tokens) SignDownload(d Download, ttl time.Duration) (string, error) {
	now := t.now()
	claims := &downloadClaims{
		Bucket: d.Bucket,
		Key:    d.Key,
		Name:   d.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{downloadAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// VerifyDownload checks a download token and returns the object it grants.
func (t *Tokens) VerifyDownload(token string) (Download, error) {
	claims := &downloadClaims{}
	opts := append(t.parserOptions(), jwt.WithAudience(downloadAudience))
	parsed, err := jwt.ParseWithClaims(token, claims, t.keyFunc, opts...)
	if err != nil || !parsed.Valid {
		return Download{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Bucket == "" || claims.Key == "" {
		return Download{}, fmt.Errorf("%w: incomplete download claims", ErrInvalidToken)
	}
	return Download{Bucket: claims.Bucket, Key: claims.Key, Name: claims.Name}, nil
}

func audienceContains(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
