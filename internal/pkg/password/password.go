package password

import "golang.org/x/crypto/bcrypt"

// Hasher wraps bcrypt so the auth service never handles hashing mechanics
// directly. Hashes embed their own salt and cost, so Compare needs no state
// beyond the stored hash.
type Hasher struct {
	cost int
}

// NewHasher clamps out-of-range costs to the bcrypt default instead of
// failing: a misconfigured cost must not take authentication down.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare returns nil when plain matches the stored hash.
func (h *Hasher) Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
