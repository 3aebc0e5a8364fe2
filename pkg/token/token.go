package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tokenBytes длина токена в байтах (128 бит энтропии)
const tokenBytes = 16

// Generate генерирует криптографически стойкий opaque-токен бронирования.
// Токен - единственный credential для анонимного доступа к бронированию,
// поэтому должен быть устойчив к перебору.
func Generate() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("token: failed to read random bytes: %v", err)
	}
	return hex.EncodeToString(buf), nil
}
