package utils

import (
    "crypto/rand"
    "fmt"
    "math/big"
)

// GenerateResetCode returns a 6-digit code for the password-reset mail.
func GenerateResetCode() string {
    n, err := rand.Int(rand.Reader, big.NewInt(1000000))
    if err != nil {
        return "000000"
    }
    return fmt.Sprintf("%06d", n.Int64())
}
