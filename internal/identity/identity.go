// Package identity maps a signed-in user onto the storage namespace that
// holds that user's trip document, and keeps track of who is signed in.
package identity

import (
	"strings"
	"unicode"
)

// dataKeyPrefix namespaces every user's document in the blob store.
const dataKeyPrefix = "tripplanner:data:"

// Key is the durable-storage key of one user's trip document.
// The zero Key means "no identity".
type Key struct {
	user string
}

// Resolve returns the namespace key for userKey. It reports false when the
// user key is blank, which callers treat as "no store".
// The mapping is pure and stable: the same user key always yields the same Key.
func Resolve(userKey string) (Key, bool) {
	user := strings.TrimSpace(userKey)
	if user == "" {
		return Key{}, false
	}
	return Key{user: user}, true
}

// User returns the user key the namespace was derived from.
func (k Key) User() string { return k.user }

// IsZero reports whether k represents "no identity".
func (k Key) IsZero() bool { return k.user == "" }

// String returns the storage key, e.g. "tripplanner:data:+15551234567".
func (k Key) String() string {
	if k.IsZero() {
		return ""
	}
	return dataKeyPrefix + k.user
}

// NormalizePhone reduces a phone number to its digits, keeping a leading "+".
// Blank input yields "".
func NormalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	var b strings.Builder
	if strings.HasPrefix(trimmed, "+") {
		b.WriteByte('+')
	}
	for _, r := range trimmed {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone reports whether raw contains at least seven digits.
func ValidPhone(raw string) bool {
	digits := 0
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7
}
