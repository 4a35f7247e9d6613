package handler

import (
	"github.com/aniketlavasare/token-hunt/internal/models"
	"github.com/aniketlavasare/token-hunt/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupHunt struct {
	container *do.Injector
}

func (gr *groupHunt) ListHunts(c echo.Context) error {
	serviceHunt, err := do.Invoke[*services.ServiceHunt](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	hunts, err := serviceHunt.ListHunts(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, hunts, nil)
}

func (gr *groupHunt) GetHunt(c echo.Context) error {
	serviceHunt, err := do.Invoke[*services.ServiceHunt](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	hunt, err := serviceHunt.GetHunt(c.Request().Context(), c.Param("hunt-id"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, hunt, nil)
}

func (gr *groupHunt) CreateHunt(c echo.Context) error {
	var payload models.Hunt
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceHunt, err := do.Invoke[*services.ServiceHunt](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	hunt, err := serviceHunt.CreateHunt(c.Request().Context(), &payload)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, hunt, nil)
}

func (gr *groupHunt) ClearHunts(c echo.Context) error {
	serviceHunt, err := do.Invoke[*services.ServiceHunt](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	hunts, rewards, err := serviceHunt.ClearAllHunts(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	result := struct {
		DeletedHunts   int `json:"deleted_hunts"`
		DeletedRewards int `json:"deleted_rewards"`
	}{hunts, rewards}

	return httpx.RestAbort(c, result, nil)
}
