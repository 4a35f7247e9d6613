package services

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func signPersonalMessage(t *testing.T, message string) (string, string) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	// wallets ship the recovery byte as 27/28
	sig[64] += 27

	address := crypto.PubkeyToAddress(key.PublicKey).Hex()
	return address, hexutil.Encode(sig)
}

func TestRecoverSignerAddress(t *testing.T) {
	message := "token-hunt login: abc123"
	address, signature := signPersonalMessage(t, message)

	recovered, err := RecoverSignerAddress(message, signature)
	require.NoError(t, err)
	require.Equal(t, address, recovered)
}

func TestRecoverSignerAddressTamperedMessage(t *testing.T) {
	address, signature := signPersonalMessage(t, "original message")

	recovered, err := RecoverSignerAddress("tampered message", signature)
	require.NoError(t, err)
	require.NotEqual(t, address, recovered)
}

func TestRecoverSignerAddressBadSignature(t *testing.T) {
	_, err := RecoverSignerAddress("message", "0xdead")
	require.Error(t, err)

	_, err = RecoverSignerAddress("message", "not-hex")
	require.Error(t, err)
}
