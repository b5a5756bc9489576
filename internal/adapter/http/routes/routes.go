package routes

import (
	"log"
	"strconv"

	_ "taskilo_finance/docs" // swag-generated API docs
	"taskilo_finance/internal/adapter/http/handlers"
	repository "taskilo_finance/internal/adapter/persistence/repository"
	"taskilo_finance/internal/infrastructure/database"
	"taskilo_finance/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	orderRepo := repository.NewOrderDynamoRepository(ddb)
	timeTrackingRepo := repository.NewTimeTrackingDynamoRepository(ddb)
	customerRepo := repository.NewCustomerDynamoRepository(ddb)
	invoiceRepo := repository.NewInvoiceDynamoRepository(ddb)

	syncUseCase := usecase.NewOrderSyncUseCase(orderRepo, timeTrackingRepo, customerRepo, invoiceRepo)
	syncHandler := handlers.NewSyncHandler(syncUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addSyncRoutes(v1, syncHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
