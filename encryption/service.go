package encryption

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/sha3"
	"golang.org/x/xerrors"
)

type CryptoService struct {
	cost int
}

func NewCryptoService() *CryptoService {
	return &CryptoService{cost: bcrypt.DefaultCost}
}

// NewCryptoServiceWithCost is used by tests to keep bcrypt fast.
func NewCryptoServiceWithCost(cost int) *CryptoService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	return &CryptoService{cost: cost}
}

// HashPassword returns the bcrypt hash of password.
func (cs *CryptoService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cs.cost)
	if err != nil {
		return "", xerrors.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword reports whether password matches the bcrypt hash.
func (cs *CryptoService) ComparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Keccak256 computes Keccak-256 hash
func (cs *CryptoService) Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Digest returns the 0x-prefixed hex Keccak-256 of data.
func (cs *CryptoService) Digest(data ...[]byte) string {
	return hexutil.Encode(cs.Keccak256(data...))
}

// ReceiptDigest fingerprints a counted vote. Fields are length-prefixed so
// that ("ab", "c") and ("a", "bc") differ.
func (cs *CryptoService) ReceiptDigest(fields ...string) string {
	parts := make([][]byte, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, []byte(fmt.Sprintf("%d:%s", len(f), f)))
	}
	return crypto.Keccak256Hash(parts...).Hex()
}
