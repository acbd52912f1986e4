package v1

import (
	"net/http"

	"myresume-backend/config"
	"myresume-backend/internal/delivery/http/middleware"
	"myresume-backend/internal/delivery/http/response"
	"myresume-backend/internal/domain"
	"myresume-backend/pkg/apperror"
	"myresume-backend/pkg/security"
	"myresume-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC  domain.AuthUsecase
	tokens  *token.Manager
	tracker *security.LoginTracker
	config  *config.Config
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup,
	authUC domain.AuthUsecase, tokens *token.Manager, tracker *security.LoginTracker, cfg *config.Config) {
	handler := &AuthHandler{
		authUC:  authUC,
		tokens:  tokens,
		tracker: tracker,
		config:  cfg,
	}

	// Public Routes
	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/register", handler.Register)
		publicAuth.POST("/login", middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig()), handler.Login)
		publicAuth.POST("/logout", handler.Logout)
		publicAuth.GET("/check-user", middleware.RateLimitMiddleware(middleware.CheckUserRateLimitConfig()), handler.CheckUser)
	}

	// Protected Routes
	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
		protectedAuth.PUT("/change-password", handler.ChangePassword)
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// setSessionCookie delivers the token as an HTTP-only cookie; Secure is on
// in release mode.
func (h *AuthHandler) setSessionCookie(c *gin.Context, tokenString string) {
	secure := gin.Mode() == gin.ReleaseMode
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, tokenString, int(token.SessionTTL.Seconds()), "/", "", secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	secure := gin.Mode() == gin.ReleaseMode
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", secure, true)
}

// Register godoc
// @Summary      User Registration
// @Description  Register a new user with username, email and password.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration Details"
// @Success      201    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Missing fields"))
		return
	}

	user, err := h.authUC.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	tokenString, err := h.tokens.Issue(user.ID)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	h.setSessionCookie(c, tokenString)

	response.Success(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":  user,
		"token": tokenString,
	})
}

// Login godoc
// @Summary      User Login
// @Description  Authenticate with email and password; sets the session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Missing email/password"))
		return
	}

	ctx := c.Request.Context()
	ip := c.ClientIP()

	blocked, err := h.tracker.IsBlocked(ctx, req.Email, ip)
	if err == nil && blocked {
		c.Error(apperror.New(http.StatusTooManyRequests, "Too many failed attempts. Please try again later.", nil))
		return
	}

	user, err := h.authUC.Login(ctx, req.Email, req.Password)
	if err != nil {
		_, _, _ = h.tracker.RecordFailedAttempt(ctx, req.Email, ip)
		c.Error(err)
		return
	}
	_ = h.tracker.ClearAttempts(ctx, req.Email, ip)

	tokenString, err := h.tokens.Issue(user.ID)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	h.setSessionCookie(c, tokenString)

	response.Success(c, http.StatusOK, "User logged in successfully", gin.H{
		"user":  user,
		"token": tokenString,
	})
}

// Logout godoc
// @Summary      User Logout
// @Description  Clears the session cookie. Tokens are stateless; no server-side revocation.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	response.Success(c, http.StatusOK, "User logged out successfully", nil)
}

// Me godoc
// @Summary      Current User
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), middleware.UserID(c))
	if err != nil || user == nil {
		c.Error(apperror.Unauthorized("User not found"))
		return
	}
	response.Success(c, http.StatusOK, "OK", gin.H{"user": user})
}

// CheckUser godoc
// @Summary      Username/Email Availability
// @Description  Case-insensitive existence check used by live-typing availability UI. Rate limited.
// @Tags         auth
// @Produce      json
// @Param        query  query  string  true  "Username or email"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/auth/check-user [get]
func (h *AuthHandler) CheckUser(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.Error(apperror.BadRequest("Query is required"))
		return
	}

	exists, err := h.authUC.CheckUserExists(c.Request.Context(), query)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", gin.H{"exists": exists})
}

// ChangePassword godoc
// @Summary      Change Password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  ChangePasswordRequest  true  "Passwords"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /api/auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Both fields are required"))
		return
	}

	if err := h.authUC.ChangePassword(c.Request.Context(), middleware.UserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Password updated successfully", nil)
}
