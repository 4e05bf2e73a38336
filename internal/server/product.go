package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/klimatech/storefront/internal/catalog/domain"
)

func (s *Server) ListProducts(c *gin.Context) {
	resp, err := s.catalogSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProductByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.catalogSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// CreateProduct accepts multipart form data with up to three image files
// under the "image" field.
func (s *Server) CreateProduct(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(formValue(form.Value, "price")), 64)
	if err != nil {
		AbortWithError(c, newValidationError("price", "invalid_price", "invalid value"))
		return
	}

	files := form.File["image"]
	if len(files) == 0 || len(files) > catalogdomain.MaxImages {
		AbortWithError(c, catalogdomain.ErrInvalidImages)
		return
	}

	images := make([]string, 0, len(files))
	for _, file := range files {
		path, err := s.saveUpload(c, file)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		images = append(images, path)
	}

	resp, err := s.catalogSvc.Create(c.Request.Context(), catalogdomain.CreateRequest{
		Name:            strings.TrimSpace(formValue(form.Value, "name")),
		Description:     strings.TrimSpace(formValue(form.Value, "description")),
		FullDescription: strings.TrimSpace(formValue(form.Value, "fullDescription")),
		Price:           price,
		Category:        strings.TrimSpace(formValue(form.Value, "category")),
		Specs:           parseSpecs(formValue(form.Value, "specs")),
		Images:          images,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

type updateProductRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	FullDescription string   `json:"fullDescription"`
	Price           float64  `json:"price"`
	Discount        float64  `json:"discount"`
	Category        string   `json:"category"`
	Specs           []string `json:"specs"`
}

func (s *Server) UpdateProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.Update(c.Request.Context(), id, catalogdomain.UpdateRequest{
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		FullDescription: strings.TrimSpace(req.FullDescription),
		Price:           req.Price,
		Discount:        req.Discount,
		Category:        strings.TrimSpace(req.Category),
		Specs:           req.Specs,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ReplaceProductImage swaps one slot of the product image list.
func (s *Server) ReplaceProductImage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	index, err := strconv.Atoi(strings.TrimSpace(c.PostForm("index")))
	if err != nil {
		AbortWithError(c, catalogdomain.ErrInvalidImageIdx)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	path, err := s.saveUpload(c, file)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	stored, err := s.catalogSvc.ReplaceImage(c.Request.Context(), id, index, path)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"image": stored}})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.catalogSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

type bulkDiscountRequest struct {
	Products []bulkDiscountItem `json:"products"`
}

type bulkDiscountItem struct {
	ID       int64       `json:"id"`
	Discount json.Number `json:"discount"`
}

// BulkUpdateDiscounts applies one discount batch atomically. A single
// malformed entry rejects the whole batch.
func (s *Server) BulkUpdateDiscounts(c *gin.Context) {
	var req bulkDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(req.Products) == 0 {
		AbortWithError(c, invalidRequestError())
		return
	}

	items := make([]catalogdomain.DiscountItem, 0, len(req.Products))
	for _, entry := range req.Products {
		discount, err := entry.Discount.Float64()
		if err != nil {
			AbortWithError(c, catalogdomain.ErrInvalidDiscount)
			return
		}
		items = append(items, catalogdomain.DiscountItem{
			ID:       entry.ID,
			Discount: discount,
		})
	}

	if err := s.catalogSvc.BulkApplyDiscount(c.Request.Context(), items); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "discounts updated"})
}

func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id == 0 {
		return 0, newValidationError(name, "invalid_id", "invalid identifier")
	}
	return id, nil
}

func formValue(values map[string][]string, key string) string {
	if entries := values[key]; len(entries) > 0 {
		return entries[0]
	}
	return ""
}

// parseSpecs accepts either a JSON array or a plain newline-separated list.
func parseSpecs(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var specs []string
	if err := json.Unmarshal([]byte(raw), &specs); err == nil {
		return specs
	}

	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			specs = append(specs, line)
		}
	}
	return specs
}
