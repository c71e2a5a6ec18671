package jwt

import "time"

const (
	// MinSecretKeyLen is the minimum length for HS256 secret key.
	MinSecretKeyLen = 32
	// DefaultTTL applies when Config.TTL is unset.
	DefaultTTL = 24 * time.Hour
)
