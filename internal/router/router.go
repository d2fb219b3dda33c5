package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"edustore/internal/auth"
	"edustore/internal/config"
	"edustore/internal/handler"
	"edustore/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	courseHandler *handler.CourseHandler,
	paymentHandler *handler.PaymentHandler,
	reviewHandler *handler.ReviewHandler,
	customerHandler *handler.CustomerHandler,
	uploadHandler *handler.UploadHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/courses", courseHandler.List)
	api.GET("/courses/:id", courseHandler.Get)

	// Secured routes (require JWT authentication). ParseTokenFunc routes
	// validation through our JWTService so the context carries typed
	// claims with the caller's role.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateToken(tokenString)
		},
	}))

	secured.GET("/me", func(c echo.Context) error {
		claims, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": claims.UserID,
			"email":   claims.Email,
			"role":    claims.Role,
		})
	})

	// Customer routes
	secured.POST("/payments", paymentHandler.Submit)
	secured.GET("/payments/my", paymentHandler.ListMine)
	secured.GET("/my-courses", courseHandler.ListMine)
	secured.GET("/courses/:id/access", paymentHandler.CheckAccess)
	secured.POST("/courses/:id/reviews", reviewHandler.Add)

	// Admin routes
	admin := secured.Group("/admin", RequireAdmin)
	admin.POST("/courses", courseHandler.Create)
	admin.PUT("/courses/:id", courseHandler.Update)
	admin.DELETE("/courses/:id", courseHandler.Delete)
	admin.GET("/payments/pending", paymentHandler.ListPending)
	admin.POST("/payments/:id/verify", paymentHandler.Verify)
	admin.POST("/payments/:id/reject", paymentHandler.Reject)
	admin.GET("/customers", customerHandler.List)
	admin.GET("/customers/:id", customerHandler.Details)
	admin.POST("/uploads/course-image", uploadHandler.CourseImage)
}

// RequireAdmin enforces the admin role on a route group. Together with
// the JWT middleware it forms the single authorization gate: identity is
// resolved once, role is checked once, and handlers never re-derive
// either on their own.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}
		if claims.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, map[string]string{
				"error": "admin role required",
				"code":  "FORBIDDEN",
			})
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
