package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"

	"github.com/aniketlavasare/token-hunt/internal/datastore/redis_store"
	"github.com/aniketlavasare/token-hunt/internal/models"
)

// ServiceWallet runs the sign-in-with-ethereum handshake: a single-use
// nonce is handed out, the wallet signs a message containing it, and the
// signer address is recovered from the signature.
type ServiceWallet struct {
	container *do.Injector
	redisDB   redis.UniversalClient
}

func NewServiceWallet(container *do.Injector) (*ServiceWallet, error) {
	db, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	return &ServiceWallet{container, db}, nil
}

// GenerateNonce issues an alphanumeric nonce that stays valid for
// redis_store.AUTH_NONCE_TTL and can be consumed exactly once.
func (service *ServiceWallet) GenerateNonce(ctx context.Context) (string, error) {
	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := redis_store.SetAuthNonce(ctx, service.redisDB, nonce); err != nil {
		return "", errorx.Wrap(err, errorx.Service)
	}

	return nonce, nil
}

func (service *ServiceWallet) VerifySignedMessage(ctx context.Context, payload *models.SIWEPayload, nonce string) (*models.WalletFromAuth, error) {
	ok, err := redis_store.TakeAuthNonce(ctx, service.redisDB, nonce)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if !ok {
		return nil, errorx.Wrap(errors.New("invalid or expired nonce"), errorx.Authn)
	}

	if !strings.Contains(payload.Message, nonce) {
		return nil, errorx.Wrap(errors.New("message does not contain the issued nonce"), errorx.Authn)
	}

	address, err := RecoverSignerAddress(payload.Message, payload.Signature)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Authn)
	}

	if !strings.EqualFold(address, payload.Address) {
		return nil, errorx.Wrap(errors.New("signature does not match the declared address"), errorx.Authn)
	}

	return &models.WalletFromAuth{Address: address}, nil
}

// RecoverSignerAddress recovers the EVM address that produced an
// eth_sign/personal_sign signature over message.
func RecoverSignerAddress(message string, signature string) (string, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return "", err
	}
	if len(sig) != 65 {
		return "", errors.New("signature must be 65 bytes")
	}

	// wallets return V as 27/28, go-ethereum expects 0/1
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	pubKey, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return "", err
	}

	return crypto.PubkeyToAddress(*pubKey).Hex(), nil
}
