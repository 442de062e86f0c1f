package vault

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// FingerprintSize is the digest length in bytes.
const FingerprintSize = blake2b.Size256

// Fingerprint is a BLAKE2b-256 digest of an entry's comparison identity.
// Equal fingerprints mean equal credentials for sync purposes.
type Fingerprint [FingerprintSize]byte

// String renders the fingerprint as lowercase hex. Safe for debug output;
// the digest is one-way and reveals nothing about the entry.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Fingerprint digests the entry's comparison tuple: URL, username, password,
// name, notes, in that order. Each field is length-prefixed before hashing so
// adjacent fields cannot blur into each other ("ab","c" and "a","bc" digest
// differently). Folder is excluded.
func (e Entry) Fingerprint() Fingerprint {
	var data []byte
	var lenBuf [binary.MaxVarintLen64]byte
	for _, field := range [...]string{e.URL, e.Username, e.Password, e.Name, e.Notes} {
		n := binary.PutUvarint(lenBuf[:], uint64(len(field)))
		data = append(data, lenBuf[:n]...)
		data = append(data, field...)
	}
	return Fingerprint(blake2b.Sum256(data))
}
