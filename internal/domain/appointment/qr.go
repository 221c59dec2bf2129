package appointment

import (
	"strings"

	"github.com/google/uuid"
)

// QRCodeLength is the fixed size of in-person verification codes.
const QRCodeLength = 16

// NewQRCode returns a fresh 16-character uppercase alphanumeric
// verification code. Uniqueness against stored appointments is the
// caller's job (collision odds are UUID-grade, but checked anyway).
func NewQRCode() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(hex[:QRCodeLength])
}
