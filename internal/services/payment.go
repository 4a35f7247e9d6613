package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"

	"github.com/aniketlavasare/token-hunt/internal/datastore/redis_store"
	"github.com/aniketlavasare/token-hunt/internal/models"
)

// ServicePayment tracks sponsor-funding references and confirms them
// against the developer-portal transaction API. References live in redis
// with a TTL so an abandoned payment expires on its own.
type ServicePayment struct {
	*ServiceHTTP
	container *do.Injector
	redisDB   redis.UniversalClient
	appID     string
	apiKey    string
	baseURL   string
}

func NewServicePayment(container *do.Injector, appID string, apiKey string) (*ServicePayment, error) {
	db, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	return &ServicePayment{&ServiceHTTP{}, container, db, appID, apiKey, WORLDCOIN_API_BASE_URL}, nil
}

func (service *ServicePayment) InitiatePayment(ctx context.Context, amount string) (*models.PaymentReference, error) {
	if amount == "" {
		return nil, errorx.Wrap(errors.New("amount is required"), errorx.Validation)
	}

	ref := &models.PaymentReference{
		Reference: strings.ReplaceAll(uuid.NewString(), "-", ""),
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}

	if err := redis_store.SetPaymentReference(ctx, service.redisDB, ref); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return ref, nil
}

// ConfirmPayment checks that the transaction the wallet reports actually
// belongs to a reference this service issued and has not failed on-chain.
func (service *ServicePayment) ConfirmPayment(ctx context.Context, reference string, transactionID string) (bool, error) {
	if reference == "" || transactionID == "" {
		return false, errorx.Wrap(errors.New("reference and transaction id are required"), errorx.Validation)
	}

	stored, err := redis_store.GetPaymentReference(ctx, service.redisDB, reference)
	if err == redis.Nil {
		return false, errorx.Wrap(errors.New("unknown or expired payment reference"), errorx.NotExist)
	}
	if err != nil {
		return false, errorx.Wrap(err, errorx.Service)
	}

	status, err := service.fetchTransactionStatus(ctx, transactionID)
	if err != nil {
		return false, err
	}

	if status.Reference != stored.Reference {
		return false, errorx.Wrap(errors.New("transaction reference mismatch"), errorx.Invalid)
	}

	if status.TransactionStatus == "failed" {
		return false, nil
	}

	// nolint:errcheck
	redis_store.DeletePaymentReference(ctx, service.redisDB, reference)

	return true, nil
}

func (service *ServicePayment) fetchTransactionStatus(ctx context.Context, transactionID string) (*models.PaymentStatus, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+service.apiKey)

	resp, err := service.httpClient(0).Get(
		fmt.Sprintf("%s/api/v2/minikit/transaction/%s?app_id=%s", service.baseURL, transactionID, service.appID),
		header,
	)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errorx.Wrap(fmt.Errorf("transaction lookup failed: %s", resp.Status), errorx.Service)
	}

	var status models.PaymentStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return &status, nil
}
