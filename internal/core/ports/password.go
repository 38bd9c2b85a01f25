package ports

// PasswordHasher hashes passwords one way and verifies them.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}
