package types

import (
	"fmt"
	"hash/fnv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Constant is a type-independent field value: either an int or a
// string, never both. It is a small struct passed and returned by value
// (used directly as B-tree search keys and index hash keys); its fields
// are pointers, so == compares pointer identity, while Equals and
// CompareTo compare the values.
type Constant struct {
	iVal *int
	sVal *string
}

// NewConstantInt wraps an integer value.
func NewConstantInt(iVal int) Constant {
	return Constant{iVal: &iVal}
}

// NewConstantString wraps a string value.
func NewConstantString(sVal string) Constant {
	return Constant{sVal: &sVal}
}

// AsInt returns the integer value, or nil if this constant is a string.
func (c Constant) AsInt() *int { return c.iVal }

// AsString returns the string value, or nil if this constant is an int.
func (c Constant) AsString() *string { return c.sVal }

// IsInt reports whether this constant holds an integer.
func (c Constant) IsInt() bool { return c.iVal != nil }

// Equals compares two constants of the same underlying type.
func (c Constant) Equals(other Constant) bool {
	if c.iVal != nil && other.iVal != nil {
		return *c.iVal == *other.iVal
	}
	if c.sVal != nil && other.sVal != nil {
		return *c.sVal == *other.sVal
	}
	return false
}

// CompareTo returns -1, 0 or 1 as c is less than, equal to, or greater
// than other. Panics if the two constants hold different types — query
// planning never compares an int field against a string field.
func (c Constant) CompareTo(other Constant) int {
	if c.iVal != nil && other.iVal != nil {
		switch {
		case *c.iVal < *other.iVal:
			return -1
		case *c.iVal > *other.iVal:
			return 1
		default:
			return 0
		}
	}
	if c.sVal != nil && other.sVal != nil {
		return strings.Compare(*c.sVal, *other.sVal)
	}
	panic("cannot compare constants of different types")
}

// HashCode returns an FNV-1a hash of the constant, with string values
// first passed through NFKC normalization so equal strings in different
// Unicode forms hash identically. Equals and CompareTo compare the raw
// strings, without normalization.
func (c Constant) HashCode() uint64 {
	h := fnv.New64a()
	if c.iVal != nil {
		fmt.Fprintf(h, "%d", *c.iVal)
	} else if c.sVal != nil {
		h.Write([]byte(norm.NFKC.String(*c.sVal)))
	}
	return h.Sum64()
}

func (c Constant) String() string {
	if c.iVal != nil {
		return fmt.Sprintf("%d", *c.iVal)
	}
	if c.sVal != nil {
		return *c.sVal
	}
	return "<nil>"
}
