package handler

import (
	"github.com/aniketlavasare/token-hunt/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupReward struct {
	container *do.Injector
}

func (gr *groupReward) ListRewards(c echo.Context) error {
	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	rewards, err := serviceReward.ListRewards(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, rewards, nil)
}

func (gr *groupReward) SpawnRewards(c echo.Context) error {
	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	spawned, err := serviceReward.EnsureRewardsSpawned(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	result := struct {
		Spawned int `json:"spawned"`
	}{spawned}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupReward) ClaimReward(c echo.Context) error {
	var payload struct {
		RewardID string  `json:"reward_id"`
		Lat      float64 `json:"lat"`
		Lng      float64 `json:"lng"`
	}
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()

	// rate limiting keys off the wallet when signed in, the client IP when not
	subject := c.RealIP()
	if wallet, err := ResolveWallet(ctx); err == nil {
		subject = wallet.Address
	}

	reward, err := serviceReward.ClaimReward(ctx, subject, payload.RewardID, payload.Lat, payload.Lng)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, reward, nil)
}

func (gr *groupReward) ClearRewards(c echo.Context) error {
	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if err := serviceReward.ClearAllRewards(c.Request().Context()); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, "success", nil)
}
