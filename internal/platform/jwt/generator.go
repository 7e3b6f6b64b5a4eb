package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Generator はAPIクライアント向けのトークンを発行します。
type Generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator は署名鍵と有効期間を指定してGeneratorを作成します。
func NewGenerator(secret string, expiration time.Duration) *Generator {
	return &Generator{secret: []byte(secret), expiration: expiration, now: time.Now}
}

// GenerateToken は subject をクライアントIDとしてHS256で署名したトークンを返します。
func (g *Generator) GenerateToken(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("subject must not be empty")
	}
	now := g.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
