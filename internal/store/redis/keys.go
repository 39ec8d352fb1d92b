package redis

import (
	"crypto/sha256"
	"encoding/hex"
)

const (
	// KeyPrefixTags is the prefix for cached tag listings
	KeyPrefixTags = "linkbridge:tags:"
)

// Scope derives a stable namespace from a backend identity (ex: the
// dispatcher kind and base URI), so two backends never share entries.
func Scope(identity string) string {
	hash := sha256.Sum256([]byte(identity))
	// 12 hex characters are enough to tell backends apart
	return hex.EncodeToString(hash[:])[:12]
}

// ScopePrefix returns the key prefix of every listing in a scope
func ScopePrefix(scope string) string {
	return KeyPrefixTags + scope + ":"
}

// TagsKey returns the Redis key of the listing cached under filtersKey
func TagsKey(scope, filtersKey string) string {
	return ScopePrefix(scope) + filtersKey
}
