// File: utils/constants.go
package utils

import "time"

// CodeCachePrefix is the prefix used for Redis verification-code keys.
const CodeCachePrefix = "verify:"

// CodeTTL is the time-to-live for emailed verification codes.
const CodeTTL = 5 * time.Minute

// SeedFlagKey marks that the appointments collection has been seeded once.
const SeedFlagKey = "appointments:seeded"
