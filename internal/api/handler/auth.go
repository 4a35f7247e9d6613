package handler

import (
	"github.com/aniketlavasare/token-hunt/internal/models"
	"github.com/aniketlavasare/token-hunt/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupAuth struct {
	container *do.Injector
}

func (gr *groupAuth) GetNonce(c echo.Context) error {
	serviceWallet, err := do.Invoke[*services.ServiceWallet](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	nonce, err := serviceWallet.GenerateNonce(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	result := struct {
		Nonce string `json:"nonce"`
	}{nonce}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupAuth) CompleteSIWE(c echo.Context) error {
	var payload struct {
		models.SIWEPayload
		Nonce string `json:"nonce"`
	}
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceWallet, err := do.Invoke[*services.ServiceWallet](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	authentication, err := do.Invoke[*services.Authentication](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	wallet, err := serviceWallet.VerifySignedMessage(c.Request().Context(), &payload.SIWEPayload, payload.Nonce)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	token, err := authentication.CreateToken(wallet)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result := struct {
		Wallet *models.WalletFromAuth `json:"wallet"`
		Token  string                 `json:"token"`
	}{wallet, token}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupAuth) VerifyProof(c echo.Context) error {
	var payload struct {
		models.ProofPayload
		Action     string `json:"action"`
		SignalHash string `json:"signal_hash"`
	}
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceVerification, err := do.Invoke[*services.ServiceVerification](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	verified, err := serviceVerification.VerifyProof(
		c.Request().Context(),
		payload.Proof,
		payload.MerkleRoot,
		payload.NullifierHash,
		payload.VerificationLevel,
		payload.Action,
		payload.SignalHash,
	)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	result := struct {
		Verified bool `json:"verified"`
	}{verified}

	return httpx.RestAbort(c, result, nil)
}
