package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/http/handlers"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/http/middleware"
)

func BuildRouter(ch *handlers.CartHandlers, co *handlers.CheckoutHandlers, ah *handlers.AdminHandlers, jwtmw *middleware.AuthMW, pol *middleware.PolicyMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	cart := r.Group("/cart")
	cart.POST("/items", ch.AddItem)
	cart.GET("/:sessionId", ch.GetCart)
	cart.PUT("/:sessionId/items/:productId", ch.UpdateItem)
	cart.DELETE("/:sessionId", ch.ClearCart)

	checkout := r.Group("/checkout")
	checkout.POST("/verification", co.SendCode)
	checkout.POST("/verify", co.VerifyCode)
	checkout.POST("/order", co.CreateOrder)

	r.POST("/admin/login", ah.Login)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), pol.Enforce())
	adm.GET("/orders", ah.ListOrders)
	adm.GET("/orders/:id", ah.GetOrder)
	adm.PATCH("/orders/:id/status", ah.UpdateOrderStatus)

	return r
}
