package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
)

// ServiceVerification relays zero-knowledge identity proofs to the World ID
// developer endpoint. The surrounding app gates the hunting flow on the
// returned success flag; nothing of the proof protocol leaks past here.
type ServiceVerification struct {
	*ServiceHTTP
	container *do.Injector
	appID     string
	baseURL   string
}

func NewServiceVerification(container *do.Injector, appID string) (*ServiceVerification, error) {
	return &ServiceVerification{&ServiceHTTP{}, container, appID, WORLDCOIN_API_BASE_URL}, nil
}

type verifyRequest struct {
	Proof             string `json:"proof"`
	MerkleRoot        string `json:"merkle_root"`
	NullifierHash     string `json:"nullifier_hash"`
	VerificationLevel string `json:"verification_level"`
	Action            string `json:"action"`
	SignalHash        string `json:"signal_hash,omitempty"`
}

type verifyResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Detail  string `json:"detail"`
}

func (service *ServiceVerification) VerifyProof(ctx context.Context, proof, merkleRoot, nullifierHash, verificationLevel, action, signalHash string) (bool, error) {
	body, err := json.Marshal(verifyRequest{
		Proof:             proof,
		MerkleRoot:        merkleRoot,
		NullifierHash:     nullifierHash,
		VerificationLevel: verificationLevel,
		Action:            action,
		SignalHash:        signalHash,
	})
	if err != nil {
		return false, err
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")

	resp, err := service.httpClient(0).Post(
		fmt.Sprintf("%s/api/v2/verify/%s", service.baseURL, service.appID),
		bytes.NewReader(body),
		header,
	)
	if err != nil {
		return false, errorx.Wrap(err, errorx.Service)
	}
	defer resp.Body.Close()

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, errorx.Wrap(err, errorx.Service)
	}

	if resp.StatusCode != http.StatusOK {
		// the usual cause is a user who already verified for this action
		return false, nil
	}

	return result.Success, nil
}
