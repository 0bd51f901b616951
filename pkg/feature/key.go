package feature

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Key identifies a rule in the store: the lowercased feature name, optionally
// followed by "#" and the lowercased variant.
type Key string

const (
	// RequiredKey holds the global veto rule.
	RequiredKey Key = "_required"
	// DefaultKey holds the global fallback rule.
	DefaultKey Key = "_default"

	variantSeparator = "#"
)

// A Caser keeps state and must not be shared between goroutines.
var lowerPool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

// EncodeKey builds the store key for a feature name and variant.
// An empty variant yields the name-only key.
func EncodeKey(name, variant string) Key {
	lower := lowerPool.Get().(*cases.Caser)
	defer lowerPool.Put(lower)

	k := lower.String(name)
	if variant != "" {
		k += variantSeparator + lower.String(variant)
	}
	return Key(k)
}

// DecodeKey splits a key on its first "#". The variant is empty when the key
// has none.
func DecodeKey(key Key) (name, variant string) {
	name, variant, _ = strings.Cut(string(key), variantSeparator)
	return name, variant
}

func (k Key) String() string {
	return string(k)
}
