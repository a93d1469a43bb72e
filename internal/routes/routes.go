package routes

import (
	"github.com/01moynul/sales-management-golang/internal/handlers"
	"github.com/01moynul/sales-management-golang/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware lets a browser front end on another origin call /v1.
// An empty origin turns the headers off.
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin == "" {
			c.Next()
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers, corsOrigin string) *gin.Engine {
	router := gin.Default()
	router.SetHTMLTemplate(handlers.Templates())

	router.Use(CORSMiddleware(corsOrigin))
	router.Use(middleware.RequestID())

	// --- Public Routes ---
	router.GET("/login", h.LoginPage)
	router.POST("/login", h.LoginSubmit)
	router.POST("/logout", h.Logout)

	v1 := router.Group("/v1")
	{
		v1.GET("/ping", h.Ping)
		v1.POST("/login", h.Login)

		// --- Protected Routes (Login Required when enabled) ---
		api := v1.Group("/")
		api.Use(middleware.AuthMiddleware(h.Auth))
		{
			// --- Customer Routes ---
			api.POST("/customers", h.RegisterCustomer)
			api.GET("/customers", h.GetCustomers)
			api.PUT("/customers/:id", h.UpdateCustomer)

			// --- Product Routes ---
			api.POST("/products", h.AddProduct)
			api.GET("/products", h.GetProducts)
			api.PUT("/products/:id", h.EditProduct)
			api.DELETE("/products/:id", h.DeleteProduct)
			api.GET("/products/:id/discount", h.CalculateDiscount)

			// --- Order Routes ---
			api.POST("/orders", h.CreateOrder)
			api.GET("/orders", h.SearchOrders)
			api.PATCH("/orders/:id/status", h.UpdateOrderStatus)
			api.POST("/orders/:id/details", h.AddOrderDetails)
			api.GET("/orders/:id/track", h.TrackOrder)
			api.GET("/order-details", h.GetAllOrderDetails)

			// --- Employee Routes ---
			api.POST("/employees", h.AddEmployee)
			api.GET("/employees", h.GetEmployees)
			api.PUT("/employees/:id", h.UpdateEmployee)

			// --- Report Routes ---
			reports := api.Group("/reports")
			{
				reports.GET("/sales", h.GetTotalSalesReport)
				reports.GET("/sales/daily", h.GetDailySalesReport)
				reports.GET("/sales/today", h.GetSalesToday)
				reports.GET("/sales/by-employee", h.GetSalesByEmployee)
				reports.GET("/sales/by-product", h.GetSalesByProduct)
				reports.GET("/sales/by-customer", h.GetSalesByCustomer)
				reports.GET("/top/employees", h.GetTopEmployees)
				reports.GET("/top/products", h.GetTopSellingProducts)
				reports.GET("/top/customers", h.GetTopCustomers)
			}

			// --- Assistant Route ---
			api.POST("/assistant/chat", h.ChatAssistant)
		}
	}

	// --- Browser UI (Login Required when enabled) ---
	ui := router.Group("/")
	ui.Use(middleware.AuthMiddleware(h.Auth))
	{
		ui.GET("/", h.Index)
		ui.GET("/ui/:section", h.SectionPage)
		ui.GET("/ui/:section/:tab", h.TabPage)
		ui.POST("/ui/:section/:tab", h.TabSubmit)
	}

	return router
}
