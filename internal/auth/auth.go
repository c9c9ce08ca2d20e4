package auth

import (
	"errors"
	"time"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims represents JWT token claims
type Claims struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// TokenGenerator creates and validates signed tokens of one kind.
type TokenGenerator interface {
	Generate(userID int64, username string, kind TokenType) (string, error)
	Validate(tokenString string, kind TokenType) (*Claims, error)
	AccessTTL() time.Duration
}

// JWTTokenGenerator signs HS256 tokens. Access and refresh tokens use separate secrets.
type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	now                func() time.Time
}

func NewJWTTokenGenerator(cfg internal.SecurityConfig) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(cfg.AccessTokenSecret),
		RefreshTokenSecret: []byte(cfg.RefreshTokenSecret),
		AccessTokenTTL:     cfg.AccessTokenDuration,
		RefreshTokenTTL:    cfg.RefreshTokenDuration,
		now:                time.Now,
	}
}

func (j *JWTTokenGenerator) WithClock(now func() time.Time) *JWTTokenGenerator {
	j.now = now
	return j
}

func (j *JWTTokenGenerator) AccessTTL() time.Duration {
	return j.AccessTokenTTL
}

func (j *JWTTokenGenerator) Generate(userID int64, username string, kind TokenType) (string, error) {
	secret, ttl := j.keyFor(kind)
	issuedAt := j.now()

	claims := &Claims{
		UserID:    userID,
		Username:  username,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Validate parses tokenString and checks that it is a token of the expected kind.
func (j *JWTTokenGenerator) Validate(tokenString string, kind TokenType) (*Claims, error) {
	secret, _ := j.keyFor(kind)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(j.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if !token.Valid || claims.TokenType != kind || claims.UserID <= 0 {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}

func (j *JWTTokenGenerator) keyFor(kind TokenType) ([]byte, time.Duration) {
	if kind == RefreshToken {
		return j.RefreshTokenSecret, j.RefreshTokenTTL
	}
	return j.AccessTokenSecret, j.AccessTokenTTL
}
