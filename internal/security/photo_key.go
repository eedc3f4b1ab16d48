package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const photoKeyAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"

const photoKeyLength = 24

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// NewPhotoKey returns an unguessable object-storage key for an uploaded
// photo. Keys carry no user or profile information.
func NewPhotoKey() (string, error) {
	suffix, err := RandomString(photoKeyLength, photoKeyAlphabet)
	if err != nil {
		return "", err
	}
	return "photos/" + suffix, nil
}

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}
