package jwt

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Hnato/JBH-Blackjack-LAN/internal/config"
	"github.com/Hnato/JBH-Blackjack-LAN/pkg/token"
	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Issuer issues the JWT
const Issuer = "lan.jbh.blackjack"

// Audience is the intended JWT audience
const Audience = "blackjack.jbh.lan"

// randomSecretLength is the length of a generated secret, 256 bits of entropy
const randomSecretLength = 43

var (
	mu     sync.RWMutex
	secret []byte
	ttl    time.Duration
)

// LoadKeys configures signing from config.Instance()
// this method should only be called once.
func LoadKeys() {
	cfg := config.Instance().JWT
	Configure(cfg.Secret, cfg.TTL)
}

// Configure sets the HMAC secret and token lifetime
// An empty secret is replaced with a random one, so tokens do not survive a restart.
// A ttl <= 0 issues tokens that never expire.
func Configure(hmacSecret string, tokenTTL time.Duration) {
	mu.Lock()
	defer mu.Unlock()

	ttl = tokenTTL
	if hmacSecret != "" {
		secret = []byte(hmacSecret)
		return
	}

	logrus.Warn("no JWT secret configured, identity tokens will not survive a restart")
	generated, err := token.Generate(randomSecretLength)
	if err != nil {
		logrus.WithError(err).Fatal("could not generate JWT secret")
	}

	secret = []byte(generated)
}

func signingKey() []byte {
	mu.RLock()
	defer mu.RUnlock()

	if secret == nil {
		panic("LoadKeys() not called")
	}

	return secret
}

// Sign will sign a JWT for the identity
func Sign(identity string) (string, error) {
	key := signingKey()

	now := time.Now()
	claims := jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(now),
		Issuer:   Issuer,
		Subject:  identity,
	}

	mu.RLock()
	if ttl > 0 {
		claims.ExpiresAt = jwtgo.NewNumericDate(now.Add(ttl))
	}
	mu.RUnlock()

	return jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, claims).SignedString(key)
}

// ValidIdentity will validate a signed JWT and return the identity it was issued to
func ValidIdentity(signedString string) (string, error) {
	key := signingKey()

	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.RegisteredClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return key, nil
	})

	if err != nil {
		return "", err
	}

	if token.Valid {
		if claims, ok := token.Claims.(*jwtgo.RegisteredClaims); ok {
			if !containsAudience(claims.Audience, Audience) {
				return "", errors.New("invalid audience")
			}

			if claims.Issuer != Issuer {
				return "", errors.New("invalid issuer")
			}

			if claims.Subject == "" {
				return "", errors.New("missing subject")
			}

			return claims.Subject, nil
		}

		return "", fmt.Errorf("expected jwt.RegisteredClaims, got %T", token.Claims)
	}

	logrus.Warn("token claims were not valid. did not expect to reach this code")
	return "", errors.New("claims were not valid")
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
