// Package canonical produces deterministic JSON serializations and SHA-256
// content addresses for records submitted on-chain. Two structurally equal
// records always hash to the same digest regardless of field ordering at the
// call site.
package canonical

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"

	"creditstudio/contracts/studio"

	dErrors "creditstudio/pkg/domain-errors"
)

// Marshal encodes v as canonical JSON: object keys sorted lexicographically,
// numbers preserved verbatim, no insignificant whitespace.
func Marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "value is not JSON-serializable")
	}

	// Round-trip through a generic value so maps re-marshal with sorted keys.
	// json.Number keeps numeric literals byte-identical across the trip.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not normalize JSON")
	}

	out, err := json.Marshal(generic)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not re-encode canonical JSON")
	}
	return out, nil
}

// Hash returns the SHA-256 digest of the canonical serialization of v.
func Hash(v any) (studio.Hash32, error) {
	data, err := Marshal(v)
	if err != nil {
		return studio.Hash32{}, err
	}
	return sha256.Sum256(data), nil
}

// HashString returns the SHA-256 digest of a raw string. Used for the fixed
// thread and evidence roots derived from their identifiers.
func HashString(s string) studio.Hash32 {
	return sha256.Sum256([]byte(s))
}
