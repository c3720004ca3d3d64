package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/tobscouts/troop-api/cmd/app"
)

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer access token issued by the identity provider
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
