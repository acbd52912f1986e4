package v1

import (
	"net/http"

	"myresume-backend/internal/delivery/http/response"
	"myresume-backend/internal/domain"
	"myresume-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PublicHandler struct {
	resumeUC domain.ResumeUsecase
}

func NewPublicHandler(root *gin.RouterGroup, resumeUC domain.ResumeUsecase) {
	handler := &PublicHandler{resumeUC: resumeUC}

	public := root.Group("/public")
	{
		public.GET("/:username", handler.Resolve)
		public.GET("/:username/check/:slug", handler.CheckSlug)
	}
}

// Resolve godoc
// @Summary      Public Resume Lookup
// @Description  Resolves a username to its owner and active resume in a single call. No authentication.
// @Tags         public
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /public/{username} [get]
func (h *PublicHandler) Resolve(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		c.Error(apperror.BadRequest("Username is required"))
		return
	}

	result, err := h.resumeUC.ResolvePublic(c.Request.Context(), username)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", result)
}

// CheckSlug godoc
// @Summary      Public Slug Check
// @Description  Reports whether the user has a resume carrying the given slug.
// @Tags         public
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Param        slug      path  string  true  "Slug"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /public/{username}/check/{slug} [get]
func (h *PublicHandler) CheckSlug(c *gin.Context) {
	exists, err := h.resumeUC.CheckSlugExists(c.Request.Context(), c.Param("username"), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", gin.H{"exists": exists})
}
