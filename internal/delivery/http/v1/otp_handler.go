package v1

import (
	"net/http"

	"myresume-backend/internal/delivery/http/middleware"
	"myresume-backend/internal/delivery/http/response"
	"myresume-backend/internal/domain"
	"myresume-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type OTPHandler struct {
	otpUC domain.OTPUsecase
}

func NewOTPHandler(public *gin.RouterGroup, otpUC domain.OTPUsecase) {
	handler := &OTPHandler{otpUC: otpUC}

	otp := public.Group("/otp", middleware.RateLimitMiddleware(middleware.OTPRateLimitConfig()))
	{
		otp.POST("/send", handler.Send)
		otp.POST("/resend", handler.Resend)
		otp.POST("/verify", handler.Verify)
	}
}

type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

// Send godoc
// @Summary      Send Verification Code
// @Description  Generates a 6-digit code, stores it for 5 minutes and emails it. Replaces any previous code for the address.
// @Tags         otp
// @Accept       json
// @Produce      json
// @Param        body  body  SendOTPRequest  true  "Target email"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/otp/send [post]
func (h *OTPHandler) Send(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Valid email is required"))
		return
	}

	if err := h.otpUC.Send(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OTP sent successfully", nil)
}

// Resend godoc
// @Summary      Resend Verification Code
// @Description  Issues a fresh code for the address, invalidating the previous one.
// @Tags         otp
// @Accept       json
// @Produce      json
// @Param        body  body  SendOTPRequest  true  "Target email"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/otp/resend [post]
func (h *OTPHandler) Resend(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Valid email is required"))
		return
	}

	if err := h.otpUC.Resend(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OTP resent successfully", nil)
}

// Verify godoc
// @Summary      Verify Code
// @Description  Checks the submitted code. Codes are single use; success marks the email verified.
// @Tags         otp
// @Accept       json
// @Produce      json
// @Param        body  body  VerifyOTPRequest  true  "Email and code"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/otp/verify [post]
func (h *OTPHandler) Verify(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Email and 6-digit OTP are required"))
		return
	}

	if err := h.otpUC.Verify(c.Request.Context(), req.Email, req.OTP); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Email verified successfully", nil)
}
