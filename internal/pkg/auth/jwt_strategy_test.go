package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/polkiloo/procurement/internal/domain/model"
)

func TestNewJWTStrategy_DefaultTTL(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if strategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
	if strategy.Name() != "jwt" {
		t.Fatalf("unexpected name: %s", strategy.Name())
	}
}

func TestJWTStrategy_IssueAndParse(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})
	identity := model.Identity{UserID: "2Nq0cQ8lS9", Role: model.RoleAdmin}

	token, err := strategy.IssueToken(identity)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	got, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if got != identity {
		t.Fatalf("unexpected identity: %+v", got)
	}
}

func TestJWTStrategy_ParseRejectsGarbage(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if _, err := strategy.ParseToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_ParseRejectsForeignSecret(t *testing.T) {
	issuer := NewJWTStrategy("other", Options{})
	token, err := issuer.IssueToken(model.Identity{UserID: "u1", Role: model.RoleContractor})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	strategy := NewJWTStrategy("secret", Options{})
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_ParseExpired(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})
	strategy.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := strategy.IssueToken(model.Identity{UserID: "u1", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	strategy.now = time.Now
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_ParseRejectsUnknownRole(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: model.Role("root"),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := strategy.ParseToken(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_ParseRejectsNoneAlgorithm(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims{
		Role: model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := strategy.ParseToken(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
