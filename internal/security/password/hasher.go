// Package password hashea y verifica credenciales.
// El algoritmo se elige por config (security.password_hasher).
package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmptyPassword = errors.New("empty password")

// Hasher es la función de hash de credenciales inyectada en los services.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// New crea el Hasher configurado: "argon2id" o "bcrypt".
func New(kind string) (Hasher, error) {
	switch kind {
	case "argon2id":
		return Argon2id{Params: Default}, nil
	case "bcrypt", "":
		return BCrypt{Cost: bcrypt.DefaultCost}, nil
	}
	return nil, fmt.Errorf("password: unknown hasher %q", kind)
}

// BCrypt implementa Hasher con bcrypt.
type BCrypt struct {
	Cost int
}

func (b BCrypt) Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), b.Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BCrypt) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Generate crea una contraseña aleatoria de n caracteres alfanuméricos.
func Generate(n int) (string, error) {
	out := make([]byte, n)
	limit := big.NewInt(int64(len(alphabet)))
	for i := range out {
		k, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[k.Int64()]
	}
	return string(out), nil
}
