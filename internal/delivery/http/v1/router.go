package v1

import (
	"net/http"

	"myresume-backend/config"
	"myresume-backend/internal/delivery/http/middleware"
	"myresume-backend/internal/delivery/http/response"
	"myresume-backend/internal/domain"
	"myresume-backend/pkg/security"
	"myresume-backend/pkg/token"
	"myresume-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	OTPUC        domain.OTPUsecase
	ResumeUC     domain.ResumeUsecase
	Tokens       *token.Manager
	LoginTracker *security.LoginTracker
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.GlobalRateLimitMiddleware())

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	root := r.Group("")
	api := r.Group("/api")

	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))

	protectedAPI := api.Group("")
	protectedAPI.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))

	NewAuthHandler(api, protectedAPI, deps.AuthUC, deps.Tokens, deps.LoginTracker, deps.Config)
	NewOTPHandler(api, deps.OTPUC)
	NewResumeHandler(protected, deps.ResumeUC)
	NewPublicHandler(root, deps.ResumeUC)

	return r
}
