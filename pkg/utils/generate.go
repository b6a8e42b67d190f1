package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ==================== OTP ====================

// GenerateOTP returns a random numeric code of the given length without a
// leading zero (length 5 yields 10000..99999).
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		length = 5
	}

	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length-1)), nil)
	span := new(big.Int).Mul(low, big.NewInt(9))

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	return n.Add(n, low).String(), nil
}

// ==================== MEDIA ====================

// GenerateMediaFilename returns a random file name keeping the extension of
// the uploaded one.
func GenerateMediaFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	return uuid.NewString() + ext
}

// ==================== PARAMS ====================

// ParseInt converts a query value to int, falling back on empty, invalid or
// non-positive input.
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil || result < 1 {
		return defaultValue
	}

	return result
}
