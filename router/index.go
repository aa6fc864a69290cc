package router

import (
	"restaurant_pos/handler"
	"restaurant_pos/middleware"
	"restaurant_pos/validate"

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

	customer := v1.Group("/customer", logger.New())
	customer.Post("/register", validate.RegisterCustomer(), handler.RegisterCustomer)
	customer.Post("/login", handler.CustomerLogin)
	customer.Get("/me", middleware.Protected(), handler.Me)
	customer.Post("/subscribe-elite", middleware.Protected(), handler.SubscribeElite)
	customer.Post("/forgot-password", handler.ForgotPassword)
	customer.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	staff := v1.Group("/staff", logger.New())
	staff.Get("/", middleware.Protected(), handler.GetCashiers)
	staff.Post("/", middleware.Protected(), validate.CreateCashier(), handler.CreateCashier)

	menu := v1.Group("/menu", logger.New())
	menu.Get("/", handler.GetMenu)

	table := v1.Group("/table", logger.New())
	table.Get("/", middleware.Protected(), handler.GetTables)
	table.Get("/available", middleware.Protected(), handler.GetAvailableTables)
	table.Post("/:number/release", middleware.Protected(), handler.ReleaseTable)

	order := v1.Group("/order", logger.New())
	order.Post("/", middleware.Protected(), validate.CreateOrder(), handler.CreateOnlineOrder)
	order.Post("/counter", middleware.Protected(), validate.CounterOrder(), handler.CreateCounterOrder)
	order.Get("/", middleware.Protected(), handler.GetMyOrders)
	order.Get("/:code", middleware.OptionalJWT(), handler.GetOrderByCode)
	order.Get("/:code/receipt", middleware.OptionalJWT(), handler.GetOrderReceipt)
	order.Post("/:code/items", middleware.Protected(), validate.AddItem(), handler.AddOrderItem)
	order.Put("/:code/items/:itemId", middleware.Protected(), validate.GetById("itemId"), validate.MutateItem(), handler.UpdateOrderItem)
	order.Delete("/:code/items/:itemId", middleware.Protected(), validate.GetById("itemId"), handler.RemoveOrderItem)
	order.Post("/:code/reprice", middleware.Protected(), handler.RepriceOrder)
	order.Post("/:code/cancel", middleware.Protected(), handler.CancelOrder)

	payment := v1.Group("/payment", logger.New())
	payment.Post("/", middleware.Protected(), validate.CreatePayment(), handler.CreatePayment)

	app.Get("/ws/orders/:code", websocket.New(handler.OrderStatusWS))
}
