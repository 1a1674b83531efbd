package main

import "accountsvc/internal/app"

// @title           Account Service API
// @version         1.0
// @description     Registration, login, Google onboarding and email OTP verification.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	app.Run()
}
