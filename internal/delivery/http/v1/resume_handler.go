package v1

import (
	"io"
	"net/http"

	"myresume-backend/internal/delivery/http/middleware"
	"myresume-backend/internal/delivery/http/response"
	"myresume-backend/internal/domain"
	"myresume-backend/internal/usecase"
	"myresume-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

func NewResumeHandler(protected *gin.RouterGroup, resumeUC domain.ResumeUsecase) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	resume := protected.Group("/resume")
	{
		resume.POST("/upload", middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig()), handler.Upload)
		resume.GET("", handler.List)
		resume.PUT("/active/:resumeId", handler.SetActive)
		resume.DELETE("/:resumeId", handler.Delete)
		resume.PUT("/slug", handler.UpdateSlug)
		resume.GET("/download/:resumeId", handler.Download)
	}
}

type UpdateSlugRequest struct {
	Slug string `json:"slug" binding:"required,min=1,max=50,slug"`
}

// Upload godoc
// @Summary      Upload Resume
// @Description  Accepts a PDF/DOC/DOCX up to 5MB as multipart field "file". The first upload becomes active automatically.
// @Tags         resume
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Resume file"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /resume/upload [post]
func (h *ResumeHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("No file uploaded"))
		return
	}
	if fileHeader.Size > usecase.MaxResumeSize {
		c.Error(apperror.BadRequest("File exceeds the 5MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, usecase.MaxResumeSize+1))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	resume, err := h.resumeUC.Upload(c.Request.Context(), middleware.UserID(c), fileHeader.Filename, data)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Resume uploaded successfully", gin.H{"resume": resume})
}

// List godoc
// @Summary      List Resumes
// @Description  Returns all resumes of the authenticated user, newest first.
// @Tags         resume
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /resume [get]
func (h *ResumeHandler) List(c *gin.Context) {
	resumes, err := h.resumeUC.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", gin.H{"resumes": resumes})
}

// SetActive godoc
// @Summary      Activate Resume
// @Description  Makes the given resume the single active one for the user.
// @Tags         resume
// @Produce      json
// @Security     BearerAuth
// @Param        resumeId  path  string  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /resume/active/{resumeId} [put]
func (h *ResumeHandler) SetActive(c *gin.Context) {
	resume, err := h.resumeUC.SetActive(c.Request.Context(), middleware.UserID(c), c.Param("resumeId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume activated", gin.H{"resume": resume})
}

// Delete godoc
// @Summary      Delete Resume
// @Description  Removes the stored file first, then the record. Storage failure leaves the record intact.
// @Tags         resume
// @Produce      json
// @Security     BearerAuth
// @Param        resumeId  path  string  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /resume/{resumeId} [delete]
func (h *ResumeHandler) Delete(c *gin.Context) {
	if err := h.resumeUC.Delete(c.Request.Context(), middleware.UserID(c), c.Param("resumeId")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume deleted successfully", nil)
}

// UpdateSlug godoc
// @Summary      Update Resume Slug
// @Description  Sets the public URL slug. The slug is a per-user property applied to all resumes.
// @Tags         resume
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  UpdateSlugRequest  true  "New slug"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /resume/slug [put]
func (h *ResumeHandler) UpdateSlug(c *gin.Context) {
	var req UpdateSlugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Slug must be lowercase letters, digits and hyphens"))
		return
	}

	resumes, err := h.resumeUC.UpdateSlug(c.Request.Context(), middleware.UserID(c), req.Slug)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Slug updated successfully", gin.H{"resumes": resumes})
}

// Download godoc
// @Summary      Download Resume
// @Description  Redirects to the stored file URL for the given resume.
// @Tags         resume
// @Produce      json
// @Security     BearerAuth
// @Param        resumeId  path  string  true  "Resume ID"
// @Success      302  {string}  string  "redirect"
// @Failure      404  {object}  response.Response
// @Router       /resume/download/{resumeId} [get]
func (h *ResumeHandler) Download(c *gin.Context) {
	url, err := h.resumeUC.Download(c.Request.Context(), middleware.UserID(c), c.Param("resumeId"))
	if err != nil {
		c.Error(err)
		return
	}
	c.Redirect(http.StatusFound, url)
}
