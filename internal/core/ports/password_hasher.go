package ports

// PasswordHasher hashes plaintext passwords and checks candidates against
// stored hashes. The domain stores only hashes; plaintext never leaves the
// request that carried it.
type PasswordHasher interface {
	// Hash derives a storable hash from a plaintext password.
	Hash(password string) (string, error)

	// Compare reports whether the candidate password matches the hash.
	Compare(hash string, password string) bool
}
