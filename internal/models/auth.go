package models

// WalletFromAuth is the identity attached to a request after a successful
// sign-in-with-ethereum handshake.
type WalletFromAuth struct {
	Address string `json:"address"`
}

// SIWEPayload is the signed wallet-auth message posted to complete-siwe.
type SIWEPayload struct {
	Address   string `json:"address"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

// ProofPayload is the zero-knowledge identity proof forwarded to the
// World ID verify endpoint. The fields pass through untouched.
type ProofPayload struct {
	Proof             string `json:"proof"`
	MerkleRoot        string `json:"merkle_root"`
	NullifierHash     string `json:"nullifier_hash"`
	VerificationLevel string `json:"verification_level"`
}
