package helpers

import (
	"crypto/rand"
)

// InviteCodeLength is the number of characters in a circle invite code.
const InviteCodeLength = 8

// URL-safe alphabet; 64 symbols so a byte masked to 6 bits maps without bias.
const inviteAlphabet = "useandom-26T198340PX75pxJACKVERYMINDBUSHWOLF_GQZbfghjklqvwyzrict"

// GenInviteCode generates a random URL-safe invite code of InviteCodeLength.
// Collisions are left to the unique index on circles.code.
func GenInviteCode() (string, error) {
	b := make([]byte, InviteCodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = inviteAlphabet[b[i]&63]
	}
	return string(b), nil
}
