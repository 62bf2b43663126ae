package routes

import (
	"github.com/gofiber/fiber/v2"

	"bulusma.link/handlers"
	"bulusma.link/middlewares"
)

// registerAPIRoutes JSON API rotalarını tanımlar. Herkese açık okuma ve
// check-in uçları auth gerektirmez; yönetim uçları bearer token ister.
func registerAPIRoutes(app *fiber.App) {
	authHandler := handlers.NewAuthHandler()
	meetHandler := handlers.NewMeetHandler()
	memberHandler := handlers.NewMemberHandler()

	api := app.Group("/api")

	// Hesap ve oturum
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Buluşmalar
	meets := api.Group("/meets")
	meets.Get("/:uid", meetHandler.GetMeet) // Herkese açık okuma
	meets.Get("/", middlewares.AuthMiddleware, meetHandler.ListMeets)
	meets.Post("/", middlewares.AuthMiddleware, meetHandler.CreateMeet)
	meets.Put("/:uid", middlewares.AuthMiddleware, meetHandler.UpdateMeet)
	meets.Delete("/:uid", middlewares.AuthMiddleware, meetHandler.DeleteMeet)

	// Katılımcılar ve check-in
	members := api.Group("/members")
	members.Post("/", memberHandler.RegisterMember)            // Herkese açık self-registration
	members.Get("/qr/:code", memberHandler.GetMemberByQr)      // Check-in araması
	members.Get("/qr/:code/image", memberHandler.GetMemberQrImage)
	members.Get("/", middlewares.AuthMiddleware, memberHandler.ListMembers)
	members.Get("/:id", middlewares.AuthMiddleware, memberHandler.GetMember)
	members.Put("/:id", middlewares.AuthMiddleware, memberHandler.UpdateMember)
	members.Delete("/:id", middlewares.AuthMiddleware, memberHandler.DeleteMember)
}
