package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/avolkov/shop-backend/internal/middleware/auth"
)

type Deps struct {
	UserHandler    *UserHTTP
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authRequired := authmw.RequireLogin(d.JWTSecret)

	api := e.Group("/api")

	users := api.Group("/users")
	users.POST("/checkemail", d.UserHandler.CheckEmail)
	users.POST("/signup", d.UserHandler.Signup)
	users.POST("/login", d.UserHandler.Login)
	users.GET("/details", d.UserHandler.GetDetails, authRequired)
	users.PATCH("/changepassword", d.UserHandler.ChangePassword, authRequired)
	users.PATCH("/:id/setadmin", d.UserHandler.SetAdmin, authRequired)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.ListActive)
	products.GET("/search", d.ProductHandler.Search)
	products.GET("/all", d.ProductHandler.ListAll, authRequired)
	products.GET("/search/all", d.ProductHandler.SearchAll, authRequired)
	products.POST("/sell", d.ProductHandler.Sell, authRequired)
	products.GET("/:id", d.ProductHandler.Get)
	products.PATCH("/:id/changeavailability", d.ProductHandler.ChangeAvailability, authRequired)
	products.PUT("/:id", d.ProductHandler.Update, authRequired)

	carts := api.Group("/carts", authRequired)
	carts.GET("", d.CartHandler.GetCart)
	carts.POST("", d.CartHandler.AddToCart)
	carts.PATCH("/increment", d.CartHandler.IncrementItem)
	carts.PATCH("/decrement", d.CartHandler.DecrementItem)
	carts.DELETE("/:productId", d.CartHandler.RemoveItem)

	orders := api.Group("/orders", authRequired)
	orders.GET("/myorders", d.OrderHandler.MyOrders)
	orders.POST("/buynow", d.OrderHandler.BuyNow)
	orders.GET("/all", d.OrderHandler.AllOrders)
	orders.POST("/checkoutcart", d.OrderHandler.CheckoutCart)
}
