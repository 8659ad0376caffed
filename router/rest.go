package router

import (
	"chat-service/controller"
	"chat-service/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func Rest(app *fiber.App) {
	api := app.Group("/v1", logger.New())

	// Auth
	auth := api.Group("/auth")
	auth.Post("/signup", controller.AuthSignup)
	auth.Post("/signin", controller.AuthSignin)
	auth.Post("/signout", middleware.JWT(), middleware.Session(), controller.AuthSignout)
	auth.Post("/2fa/secret", middleware.JWT(), middleware.Session(), middleware.OTP(), controller.AuthOtpSecret)
	auth.Post("/2fa/verify", middleware.JWT(), middleware.Session(), middleware.OTP(), controller.AuthOtpVerify)
	auth.Post("/2fa/validate", middleware.JWT(), middleware.Session(), controller.AuthOtpValidate)
	auth.Post("/2fa/disable", middleware.JWT(), middleware.Session(), middleware.OTP(), controller.AuthOtpDisable)

	// User
	user := api.Group("/user", middleware.JWT(), middleware.Session(), middleware.OTP())
	user.Get("/profile", controller.UserProfile)
	user.Put("/profile", controller.UserUpdateProfile)
	user.Get("/search", controller.UserSearch)

	// Chat
	chat := api.Group("/chat", middleware.JWT(), middleware.Session(), middleware.OTP())
	chat.Get("/list", controller.ChatList)
	chat.Post("/private", controller.ChatCreatePrivate)
	chat.Post("/group", controller.ChatCreateGroup)
	chat.Post("/:id/members", controller.ChatAddMember)

	// Messenger
	messenger := api.Group("/messenger", middleware.JWT(), middleware.Session(), middleware.OTP())
	messenger.Post("/message", controller.MessengerSendMessage)
	messenger.Put("/message/:id", controller.MessengerEditMessage)
	messenger.Delete("/message/:id", controller.MessengerDeleteMessage)
	messenger.Get("/messages/:chat", controller.MessengerMessages)
}
