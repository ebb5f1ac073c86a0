package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"raone/internal/config"
	apperr "raone/internal/errors"
	"raone/internal/handler"
	"raone/internal/middleware"
	"raone/internal/model"
)

// Handlers groups the handler set so Register doesn't grow a parameter per
// resource.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Review   *handler.ReviewHandler
	Address  *handler.AddressHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, session echo.MiddlewareFunc, h Handlers) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowCredentials: true,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/activate", h.Auth.Activate)
	api.POST("/auth/login", h.Auth.Login)

	api.GET("/categories", h.Category.ListCategories)
	api.GET("/sub-categories", h.Category.ListSubCategories)
	api.GET("/products", h.Product.List)
	api.GET("/products/search", h.Product.Search)
	api.GET("/products/:id", h.Product.Get)
	api.GET("/products/:id/reviews", h.Review.ListReviews)
	api.GET("/reviews/:id/replies", h.Review.ListReplies)

	// Session routes (valid cookie pair required)
	secured := api.Group("", session)

	secured.DELETE("/auth/logout", h.Auth.Logout)
	secured.GET("/users/me", h.Auth.Me)
	secured.PATCH("/users/me", h.User.Update)
	secured.POST("/users/me/confirm", h.User.ConfirmUpdate)
	secured.PUT("/users/me/avatar", h.User.UpdateAvatar)

	secured.POST("/cart", h.Cart.AddItem)
	secured.GET("/cart", h.Cart.ListItems)
	secured.DELETE("/cart/:id", h.Cart.RemoveItem)

	secured.POST("/addresses", h.Address.Add)
	secured.GET("/addresses", h.Address.List)
	secured.DELETE("/addresses/:id", h.Address.Remove)

	secured.POST("/orders", h.Order.Create)
	secured.GET("/orders", h.Order.List)
	secured.GET("/orders/:id", h.Order.Get)

	secured.POST("/reviews", h.Review.CreateReview)
	secured.DELETE("/reviews/:id", h.Review.DeleteReview)
	secured.POST("/replies", h.Review.CreateReply)
	secured.DELETE("/replies/:id", h.Review.DeleteReply)

	// Catalog writes are admin only
	admin := secured.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.POST("/categories", h.Category.CreateCategories)
	admin.POST("/sub-categories", h.Category.CreateSubCategories)

	// Product and order fulfillment writes are for vendors and admins
	vendor := secured.Group("", middleware.RequireRole(model.RoleVendor, model.RoleAdmin))
	vendor.POST("/products", h.Product.Create)
	vendor.PATCH("/products/:id", h.Product.Update)
	vendor.DELETE("/products/:id", h.Product.Delete)
	vendor.PATCH("/orders/:id", h.Order.Update)
}

// errorHandler renders every error as the uniform failure envelope.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "something went wrong"

	if httpErr, ok := err.(*echo.HTTPError); ok {
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	} else {
		apiErr := apperr.AsAPIError(err)
		status = apiErr.Status
		message = apiErr.Message
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, apperr.Fail(message))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
