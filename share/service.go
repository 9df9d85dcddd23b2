// Package share issues and resolves bearer capability tokens granting
// read-only access to a customer's or job's full record tree. Possession
// of the token is the whole access model; the Service interface exists
// so expiry or revocation can be added later without touching callers.
package share

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"gorm.io/gorm"

	"github.com/hsuden/wellatlas/models"
	"github.com/hsuden/wellatlas/store"
)

// ErrInvalidToken means the token string does not resolve at all. It is
// distinct from a resolved token whose target has since vanished; that
// case surfaces downstream as gorm.ErrRecordNotFound.
var ErrInvalidToken = errors.New("invalid share token")

// tokenBytes is the entropy of a share token before encoding.
const tokenBytes = 24

// issueAttempts bounds regeneration when a generated token collides with
// an existing row.
const issueAttempts = 3

// Service issues and resolves share tokens and performs the cascading
// reads behind share views.
type Service interface {
	Issue(kind string, targetID uint) (*models.ShareToken, error)
	Resolve(token, kind string) (*models.ShareToken, error)
	CustomerTree(customerID uint) (*CustomerTree, error)
	JobTree(jobID uint) (*JobTree, error)
}

// TokenService implements Service over the repository layer.
type TokenService struct {
	store          store.Interface
	includeDeleted bool // include soft-deleted sites/jobs in share trees
}

// NewService builds a token service. includeDeleted controls whether
// share trees show soft-deleted sites and jobs.
func NewService(st store.Interface, includeDeleted bool) *TokenService {
	return &TokenService{store: st, includeDeleted: includeDeleted}
}

// Issue creates a token for an existing customer or job. The target must
// exist at issuance time; a missing target returns the store's not-found
// error.
func (s *TokenService) Issue(kind string, targetID uint) (*models.ShareToken, error) {
	switch kind {
	case models.ShareKindCustomer:
		if _, err := s.store.GetCustomer(targetID); err != nil {
			return nil, err
		}
	case models.ShareKindJob:
		if _, err := s.store.GetJobByID(targetID); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidToken
	}

	for attempt := 0; ; attempt++ {
		token, err := newToken()
		if err != nil {
			return nil, err
		}
		t := models.ShareToken{Kind: kind, TargetID: targetID, Token: token}
		err = s.store.CreateShareToken(&t)
		if err == nil {
			return &t, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt >= issueAttempts {
			return nil, err
		}
	}
}

// Resolve is a pure lookup: it does not check whether the target still
// exists, so a token for a since-deleted record resolves and the
// caller's cascading read reports not-found downstream.
func (s *TokenService) Resolve(token, kind string) (*models.ShareToken, error) {
	t, err := s.store.GetShareToken(token, kind)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return t, nil
}

// newToken returns a URL-safe random token string.
func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
