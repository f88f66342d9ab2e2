package auth

import "golang.org/x/crypto/bcrypt"

// CodeHasher hashes one-time codes before they are stored on the user.
type CodeHasher interface {
	Hash(code string) (string, error)
	Compare(hash string, code string) error
}

// BcryptHasher is the bcrypt backed CodeHasher.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates BcryptHasher. A zero cost selects bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(code string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(code), h.cost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// Compare returns nil only when code produced hash.
func (h *BcryptHasher) Compare(hash string, code string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
}
