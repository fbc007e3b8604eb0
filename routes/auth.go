package routes

import (
	"vitalitygo/config"
	"vitalitygo/controllers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes wires the public account endpoints. Everything here
// is reachable without a token; the handlers talk to Cognito directly.
func SetupAuthRoutes(router *gin.Engine, cfg *config.Config) {
	auth := controllers.NewAuthController(cfg)

	router.POST("/signup", auth.SignUp)
	router.POST("/verifyEmail", auth.VerifyEmail)
	router.POST("/login", auth.Login)
	router.POST("/googleLogin", auth.GoogleLogin)
	router.POST("/forgotPassword", auth.ForgotPassword)
	router.POST("/verifyForgotPassword", auth.VerifyForgotPassword)
	router.POST("/verifyToken", auth.VerifyToken)
}

// SetupAccountRoutes wires the token-protected account endpoints.
func SetupAccountRoutes(router *gin.RouterGroup, cfg *config.Config) {
	auth := controllers.NewAuthController(cfg)

	router.POST("/changePassword", auth.ChangePassword)
	router.DELETE("/account", auth.DeleteAccount)
}
