package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/config"
	httpx "github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/http"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/http/handlers"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/http/middleware"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/infrastructure/auth"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(container.DB, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	container.PolicySvc = services.NewPolicyService(cas.E)

	cartH := handlers.NewCartHandlers(container.CartSvc)
	checkoutH := handlers.NewCheckoutHandlers(container.VerificationSvc, container.OrderSvc)
	adminH := handlers.NewAdminHandlers(container.AdminAuthSvc, container.OrderSvc)

	jwtMW := middleware.NewAuthMW(container.TokenSvc)
	policyMW := middleware.NewPolicyMW(container.PolicySvc)

	r := httpx.BuildRouter(cartH, checkoutH, adminH, jwtMW, policyMW)

	policies := container.PolicySvc.GetPolicies()
	if len(policies) == 0 {
		if err := container.PolicySvc.AddPolicy("admin", "/admin/*", "(GET|POST|PUT|PATCH|DELETE)"); err != nil {
			return err
		}
		log.Println("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
