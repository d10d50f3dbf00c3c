package employee

import (
	"crypto/rand"
	"math/big"
)

const passwordCharset = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

// generateTempPassword builds the one-time password mailed to a newly
// onboarded employee. The charset drops lookalike characters.
func generateTempPassword(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(passwordCharset)))

	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = passwordCharset[n.Int64()]
	}

	return string(buf), nil
}
