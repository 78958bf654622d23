package apikey

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/evekit/pkg/errors"
)

// KeyType is the scope a key grants access to.
type KeyType int

const (
	Account KeyType = iota + 1
	Character
	Corporation
)

var keyTypeNames = map[KeyType]string{
	Account:     "Account",
	Character:   "Character",
	Corporation: "Corporation",
}

func (t KeyType) String() string {
	if s, ok := keyTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("KeyType(%d)", int(t))
}

// ParseKeyType converts the remote type name, ignoring case.
// Unknown names are a DECODE_FAILURE.
func ParseKeyType(s string) (KeyType, error) {
	for t, name := range keyTypeNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	return 0, errors.New(errors.ErrCodeDecode, "unknown key type %q", s)
}

// Info is what the remote service reports about a key.
type Info struct {
	AccessMask int64
	Type       KeyType
	Expires    time.Time // Zero means the key never expires
}

// NeverExpires reports whether the key has no expiry date.
func (i Info) NeverExpires() bool { return i.Expires.IsZero() }

// Has reports whether every bit of mask is granted.
func (i Info) Has(mask int64) bool { return i.AccessMask&mask == mask }
