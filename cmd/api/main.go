package main

import (
	_ "taskilo_finance/docs"
	"taskilo_finance/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Taskilo Finance Sync API
// @version         1.0
// @description     Order-to-invoice synchronization service (Taskilo orders to finance invoices) backed by DynamoDB.

// @contact.name   API Support
// @contact.email  support@taskilo.de

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	routes.Run()
}
