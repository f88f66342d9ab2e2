package test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/polkiloo/procurement/internal/domain/model"
	pkgAuth "github.com/polkiloo/procurement/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied secret.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates secret against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues tokens of the form "token:<user>:<role>".
type StrategyStub struct {
	IssueFn func(model.Identity) (string, error)
	ParseFn func(string) (model.Identity, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(identity model.Identity) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(identity)
	}
	return fmt.Sprintf("token:%s:%s", identity.UserID, identity.Role), nil
}

// ParseToken parses tokens produced by IssueToken.
func (s StrategyStub) ParseToken(token string) (model.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	parts := strings.Split(token, ":")
	if len(parts) != 3 || parts[0] != "token" {
		return model.Identity{}, pkgAuth.ErrInvalidToken
	}
	return model.Identity{UserID: parts[1], Role: model.Role(parts[2])}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub returns a fixed identity or error.
type TokenParserStub struct {
	Identity model.Identity
	Err      error
}

func (s TokenParserStub) ParseToken(string) (model.Identity, error) {
	if s.Err != nil {
		return model.Identity{}, s.Err
	}
	return s.Identity, nil
}

// CodeGeneratorStub returns a fixed one-time code.
type CodeGeneratorStub struct {
	Code string
	Err  error
}

func (g CodeGeneratorStub) Generate() (string, error) {
	if g.Err != nil {
		return "", g.Err
	}
	if g.Code == "" {
		return "123456", nil
	}
	return g.Code, nil
}

// ThrottleStub records keys and fails with Err when set.
type ThrottleStub struct {
	mu   sync.Mutex
	Keys []string
	Err  error
}

func (t *ThrottleStub) Acquire(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Keys = append(t.Keys, key)
	return t.Err
}

// IDGeneratorStub hands out sequential identifiers.
type IDGeneratorStub struct {
	mu     sync.Mutex
	Prefix string
	n      int64
}

func (g *IDGeneratorStub) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	prefix := g.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%d", prefix, g.n)
}

func (g *IDGeneratorStub) NextSequence() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return g.n
}

// GeocoderStub returns a fixed address or error.
type GeocoderStub struct {
	Address *model.Address
	Err     error
	Calls   int
}

func (g *GeocoderStub) Reverse(_ context.Context, _ model.GeoPoint) (*model.Address, error) {
	g.Calls++
	if g.Err != nil {
		return nil, g.Err
	}
	return g.Address, nil
}

// SMSSenderStub records sent messages.
type SMSSenderStub struct {
	mu   sync.Mutex
	Sent []model.SMSPayload
	Err  error
}

func (s *SMSSenderStub) Send(_ context.Context, phone, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, model.SMSPayload{Phone: phone, Message: message})
	return nil
}

var _ pkgAuth.CodeHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
var _ pkgAuth.CodeGenerator = CodeGeneratorStub{}
