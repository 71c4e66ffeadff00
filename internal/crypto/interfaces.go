package crypto

// CredentialCipher protects provider credentials at rest. Credentials travel
// over the wire as plaintext JSON objects; before a row is written the
// object is sealed into an opaque string, and it is only opened again when a
// sync job needs to call the vendor API.
//
// Round-trip law: Decrypt(Encrypt(x)) == x for any JSON-serializable map x.
// Decryption is authenticated: a modified ciphertext fails instead of
// producing a wrong value.
type CredentialCipher interface {
	// Encrypt serializes credentials to JSON and seals them with the
	// process-wide key. The result is safe to store in a text column.
	Encrypt(credentials map[string]any) (string, error)

	// Decrypt opens a blob produced by Encrypt and unmarshals the plaintext
	// back into a credentials map. Fails on any tampering or key mismatch.
	Decrypt(encrypted string) (map[string]any, error)
}
