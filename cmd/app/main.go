// @title Booking Management API
// @description Backend service for venue and catering booking management.
// @version 1.0
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"dpbooking/config"
	"dpbooking/di"
	"dpbooking/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
