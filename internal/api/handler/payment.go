package handler

import (
	"github.com/aniketlavasare/token-hunt/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupPayment struct {
	container *do.Injector
}

func (gr *groupPayment) InitiatePayment(c echo.Context) error {
	var payload struct {
		Amount string `json:"amount"`
	}
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	servicePayment, err := do.Invoke[*services.ServicePayment](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	reference, err := servicePayment.InitiatePayment(c.Request().Context(), payload.Amount)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, reference, nil)
}

func (gr *groupPayment) ConfirmPayment(c echo.Context) error {
	var payload struct {
		Reference     string `json:"reference"`
		TransactionID string `json:"transaction_id"`
	}
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	servicePayment, err := do.Invoke[*services.ServicePayment](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	success, err := servicePayment.ConfirmPayment(c.Request().Context(), payload.Reference, payload.TransactionID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	result := struct {
		Success bool `json:"success"`
	}{success}

	return httpx.RestAbort(c, result, nil)
}
