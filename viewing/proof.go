package viewing

import (
	"github.com/sipprotocol/sip/crypto"
)

// ownershipDomain separates ownership-proof signatures from every other
// signature a viewing key could produce.
const ownershipDomain = "SIP Protocol Ownership Proof"

// Proof demonstrates possession of a viewing key over a fresh challenge
// without revealing the key.
type Proof struct {
	KeyHash   crypto.Hash
	PublicKey []byte
	Challenge []byte
	Signature crypto.Signature
}

// ProveOwnership signs the challenge under the key's secret. The verifier
// supplies the challenge, so proofs never replay across sessions.
func ProveOwnership(k *Key, challenge []byte) *Proof {
	return &Proof{
		KeyHash:   k.Hash(),
		PublicKey: k.PublicKey.Bytes(),
		Challenge: append([]byte{}, challenge...),
		Signature: k.PrivateKey.Sign(challengeMessage(challenge)),
	}
}

// VerifyOwnership checks the proof against the challenge the verifier issued.
// A proof over a different challenge never verifies.
func VerifyOwnership(c crypto.Curve, proof *Proof, challenge []byte) bool {
	if proof == nil {
		return false
	}
	pub, err := c.PublicKeyFromBytes(proof.PublicKey)
	if err != nil {
		return false
	}
	if ComputeKeyHash(pub) != proof.KeyHash {
		return false
	}
	return pub.Verify(challengeMessage(challenge), proof.Signature)
}

// VerifyOwnershipByHash additionally pins the proof to a published key hash,
// the form auditors use against an on-chain viewing key commitment.
func VerifyOwnershipByHash(c crypto.Curve, proof *Proof, keyHash crypto.Hash, challenge []byte) bool {
	if proof == nil || proof.KeyHash != keyHash {
		return false
	}
	return VerifyOwnership(c, proof, challenge)
}

func challengeMessage(challenge []byte) []byte {
	return append([]byte(ownershipDomain), challenge...)
}
