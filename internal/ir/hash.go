package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix allows future algorithm migration.
const (
	DomainRecord  = "chembal/record/v1"
	DomainContent = "chembal/content/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// RecordID computes the ID of r from its run, sequence and body.
// Rewriting the same record in the same run yields the same ID.
func RecordID(r Record) (string, error) {
	obj := IRObject{
		"run_id": IRString(r.RunID),
		"seq":    IRInt(r.Seq),
		"body":   r.Body(),
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("RecordID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRecord, canonical), nil
}

// ContentHash identifies what was balanced, independent of run and sequence.
func ContentHash(r Record) (string, error) {
	canonical, err := MarshalCanonical(r.Body())
	if err != nil {
		return "", fmt.Errorf("ContentHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainContent, canonical), nil
}

// MustRecordID is like RecordID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustRecordID(r Record) string {
	id, err := RecordID(r)
	if err != nil {
		panic(err)
	}
	return id
}
