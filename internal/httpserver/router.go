package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/minhtd/product-catalog/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	UploadHandler  *UploadHandler
	JWTSecret      []byte
	UploadDir      string
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/auth/login", d.AuthHandler.Login)
	e.POST("/users/register", d.AuthHandler.Register)

	e.Static("/uploads", d.UploadDir)

	requireAuth := authmw.RequireAuth(d.JWTSecret)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.ListProducts)
	products.POST("", d.ProductHandler.CreateProduct, requireAuth)
	products.POST("/upload", d.UploadHandler.UploadImage, requireAuth)
	products.GET("/:id", d.ProductHandler.GetProduct, requireAuth)
	products.PUT("/:id", d.ProductHandler.UpdateProduct, requireAuth)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, requireAuth)
}
