package router

import (
	"restaurant_manager/handler"
	"restaurant_manager/middleware"
	"restaurant_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)

	account := v1.Group("/account", logger.New())
	account.Get("/", middleware.Protected(), handler.GetAccounts)
	account.Get("/me", middleware.Protected(), handler.Me)
	account.Post("/", middleware.Protected(), validate.CreateAccount(), handler.CreateAccount)
	account.Put("/:accountId", middleware.Protected(), handler.EditAccount)
	account.Post("/change-password", middleware.Protected(), validate.AdminChangePassword(), handler.AdminChangePassword)
	account.Post("/me/change-password", middleware.Protected(), validate.StaffChangePassword(), handler.StaffChangePassword)

	table := v1.Group("/table", logger.New())
	table.Get("/", middleware.Protected(), handler.GetTables)
	table.Post("/", middleware.Protected(), validate.CreateTable(), handler.CreateTable)
	table.Put("/:tableId", middleware.Protected(), handler.EditTable)
	table.Delete("/:tableId", middleware.Protected(), validate.GetById("tableId"), handler.DeleteTable)

	category := v1.Group("/category", logger.New())
	category.Get("/", middleware.Protected(), handler.GetCategories)
	category.Post("/", middleware.Protected(), validate.CreateCategory(), handler.CreateCategory)

	menu := v1.Group("/menu", logger.New())
	menu.Get("/", middleware.Protected(), handler.GetMenuItems)
	menu.Post("/", middleware.Protected(), validate.CreateMenuItem(), handler.CreateMenuItem)
	menu.Put("/:itemId", middleware.Protected(), handler.EditMenuItem)
	menu.Delete("/:itemId", middleware.Protected(), handler.DeleteMenuItem)
	menu.Post("/:itemId/image", middleware.Protected(), handler.UploadMenuItemImage)
	v1.Post("/cloudinary-signature", middleware.Protected(), handler.GenerateSignature)

	order := v1.Group("/order", logger.New())
	order.Get("/", middleware.Protected(), handler.GetOrders)
	order.Patch("/:orderId/status", middleware.Protected(), validate.UpdateOrderStatus(), handler.UpdateOrderStatus)

	statistic := v1.Group("/statistic", logger.New())
	statistic.Get("/", middleware.Protected(), handler.GetAdminStats)
	statistic.Get("/revenue-chart", middleware.Protected(), handler.GetRevenueChart)
	statistic.Get("/top-items", middleware.Protected(), handler.GetTopMenuItems)

	// Thanh toán VNPay
	app.Post("/payments", validate.CreatePayment(), handler.CreatePayment)
	app.Get("/vnpay/return", handler.VNPayCallback) // Callback từ VNPay
	app.Post("/vnpay/return", handler.VNPayCallback)
	app.Get("/vnpay/ipn", handler.VNPayIPN) // Server-to-Server
	app.Post("/vnpay/ipn", handler.VNPayIPN)

	// Public — khách tại bàn, không cần đăng nhập
	thucdon := v1.Group("/thuc-don")
	thucdon.Get("/", middleware.OptionalJWT(), handler.GetPublicMenu)

	donhang := v1.Group("/don-hang")
	donhang.Post("/", middleware.OptionalJWT(), validate.CreateOrder(), handler.PlaceOrder)
	donhang.Get("/:orderCode", middleware.OptionalJWT(), handler.GetOrderDetail)
	donhang.Post("/:orderCode/cancel", middleware.OptionalJWT(), handler.CancelOrderByCustomer)
	donhang.Get("/:orderCode/payment", middleware.OptionalJWT(), handler.GetPaymentStatus)

	// Websocket realtime
	ws := v1.Group("/ws")
	ws.Get("/don-hang/:orderId", websocket.New(handler.OrderWebsocket))
	ws.Get("/admin", middleware.Protected(), websocket.New(handler.AdminWebsocket))
}
