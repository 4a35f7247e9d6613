package handler

import (
	"net/http"

	"github.com/aniketlavasare/token-hunt/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "token-hunt")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}
		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})

		routesAPIv1.Use(cors)
		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated request.

		a := groupAuth{cfg.Container}
		routesAPIv1.GET("/auth/nonce", a.GetNonce)
		routesAPIv1.POST("/auth/complete-siwe", a.CompleteSIWE)
		routesAPIv1.POST("/verify", a.VerifyProof)

		h := groupHunt{cfg.Container}
		routesAPIv1.GET("/hunts", h.ListHunts)
		routesAPIv1.GET("/hunts/:hunt-id", h.GetHunt)
		routesAPIv1.POST("/hunts", h.CreateHunt)
		routesAPIv1.DELETE("/hunts", h.ClearHunts)

		rs := groupReward{cfg.Container}
		routesAPIv1.GET("/rewards", rs.ListRewards)
		routesAPIv1.POST("/rewards/spawn", rs.SpawnRewards)
		routesAPIv1.POST("/rewards/claim", rs.ClaimReward)
		routesAPIv1.DELETE("/rewards", rs.ClearRewards)

		p := groupPayment{cfg.Container}
		routesAPIv1.POST("/payment/initiate", p.InitiatePayment)
		routesAPIv1.POST("/payment/confirm", p.ConfirmPayment)
	}

	return r, nil
}
