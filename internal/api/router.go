package api

import (
	v1 "github.com/facturo/facturo/internal/api/v1"
	"github.com/facturo/facturo/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health  *v1.HealthHandler
	Invoice *v1.InvoiceHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Invoice routes
	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.PUT("/:id", handlers.Invoice.UpdateInvoice)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
		invoices.POST("/:id/send", handlers.Invoice.SendInvoice)
		invoices.POST("/:id/status", handlers.Invoice.UpdateInvoiceStatus)
		invoices.GET("/:id/download", handlers.Invoice.DownloadInvoice)
	}
}
