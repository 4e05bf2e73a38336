package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	blogdomain "github.com/klimatech/storefront/internal/blog/domain"
)

func (s *Server) ListBlogPosts(c *gin.Context) {
	resp, err := s.blogSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// CreateBlogPost accepts multipart form data with an optional single
// cover image under the "image" field.
func (s *Server) CreateBlogPost(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	content := strings.TrimSpace(c.PostForm("content"))

	var image string
	if file, err := c.FormFile("image"); err == nil && file != nil {
		path, err := s.saveUpload(c, file)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		image = path
	}

	resp, err := s.blogSvc.Create(c.Request.Context(), blogdomain.CreateRequest{
		Title:   title,
		Content: content,
		Image:   image,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) DeleteBlogPost(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.blogSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}
