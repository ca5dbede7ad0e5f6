// Package ir provides the canonical record types shared by the store, the
// harness and the CLI.
//
// This package contains type definitions and serialization only. All other
// internal packages may import ir; ir imports nothing internal.
//
// Key design constraints:
//   - NO float types in canonical values; coefficients are int64
//   - Canonical JSON follows RFC 8785 (sorted keys, NFC strings, no HTML escaping)
//   - Record IDs are content-addressed (SHA-256 with domain separation)
package ir
