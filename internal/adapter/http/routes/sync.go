package routes

import (
	"taskilo_finance/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathSync = "/sync"
)

func addSyncRoutes(rg *gin.RouterGroup, syncHandler *handlers.SyncHandler) {
	sync := rg.Group(PathSync)
	{
		// Mirrors the finance API surface consumed by the Taskilo UI.
		sync.POST("/order-to-invoice/:order_id", syncHandler.SyncOrder)
		sync.POST("/order-to-invoice", syncHandler.BatchSync)
	}
}
