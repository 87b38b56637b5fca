package crypto

// Stealth derivation at the scalar level. The protocol pins the role
// assignment: the ECDH exchange runs against the SPENDING key and the
// VIEWING key is the base of the one-time address. Every conforming
// implementation must use the same assignment or recipients scan past
// their own payments.

// DeriveStealthPublicKey is the sender side. r is the fresh per-transfer
// ephemeral secret, S and V the recipient's public spending and viewing
// keys. Returns the one-time public key and the shared-secret digest the
// view tag is cut from.
func DeriveStealthPublicKey(r PrivateKey, S, V PublicKey) (PublicKey, Hash) {
	shared := NewHash(r.ScalarMult(S).Bytes())
	offset := r.Curve().ScalarFromHash(shared)
	return offset.Public().AddPublic(V), shared
}

// SharedSecretHash is the recipient side of the ECDH exchange: s is the
// private spending key, R the announced ephemeral public key.
func SharedSecretHash(s PrivateKey, R PublicKey) Hash {
	return NewHash(s.ScalarMult(R).Bytes())
}

// DeriveStealthPrivateKey recovers the only scalar whose public image is
// the one-time address: viewing key plus the shared-secret offset. The
// result is spending authority and must be handled like a primary key.
func DeriveStealthPrivateKey(R PublicKey, s, v PrivateKey) PrivateKey {
	shared := SharedSecretHash(s, R)
	return s.Curve().ScalarFromHash(shared).AddPrivate(v)
}

// ViewTag returns the cheap one-byte pre-filter for scanning.
func ViewTag(shared Hash) byte {
	return shared[0]
}
