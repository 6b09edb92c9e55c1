// Package digest provides the canonical hashing used to link blocks
// together and to check proof of work solutions.
package digest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ZeroHash represents a hash code of zeros. It is returned when a value
// can't be serialized.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// Hash returns the lowercase hex encoded SHA-256 of the canonical JSON form
// of the value. Two values with the same field values always produce the
// same hash, regardless of the order the fields were declared or decoded in.
func Hash(value any) string {
	data, err := Canonical(value)
	if err != nil {
		return ZeroHash
	}

	return Sum(data)
}

// Sum returns the lowercase hex encoded SHA-256 of the data.
func Sum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Canonical marshals the value into JSON where every object has its keys
// emitted in lexicographic order. Numbers keep the text form they were encoded with.
func Canonical(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	// Round trip through a generic value. Maps are always marshaled with
	// sorted keys which gives the document a single canonical form.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(generic); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
