package redis_store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aniketlavasare/token-hunt/internal/models"
)

const (
	AUTH_NONCE_TTL  = 10 * time.Minute
	PAYMENT_REF_TTL = 30 * time.Minute
)

func dbKeyAuthNonce(nonce string) string {
	return fmt.Sprintf("auth:nonce:%s", nonce)
}

func dbKeyPaymentReference(reference string) string {
	return fmt.Sprintf("payment:reference:%s", reference)
}

func SetAuthNonce(ctx context.Context, rdb redis.UniversalClient, nonce string) error {
	return rdb.Set(ctx, dbKeyAuthNonce(nonce), "1", AUTH_NONCE_TTL).Err()
}

// TakeAuthNonce consumes the nonce. GETDEL makes issuance single-use: a
// replayed handshake sees redis.Nil.
func TakeAuthNonce(ctx context.Context, rdb redis.UniversalClient, nonce string) (bool, error) {
	err := rdb.GetDel(ctx, dbKeyAuthNonce(nonce)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func SetPaymentReference(ctx context.Context, rdb redis.UniversalClient, ref *models.PaymentReference) error {
	b, err := msgpack.Marshal(ref)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, dbKeyPaymentReference(ref.Reference), b, PAYMENT_REF_TTL).Err()
}

func GetPaymentReference(ctx context.Context, rdb redis.UniversalClient, reference string) (*models.PaymentReference, error) {
	b, err := rdb.Get(ctx, dbKeyPaymentReference(reference)).Bytes()
	if err != nil {
		return nil, err
	}

	var ref models.PaymentReference
	if err := msgpack.Unmarshal(b, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

func DeletePaymentReference(ctx context.Context, rdb redis.UniversalClient, reference string) error {
	return rdb.Del(ctx, dbKeyPaymentReference(reference)).Err()
}
