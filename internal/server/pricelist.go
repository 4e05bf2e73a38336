package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPriceList renders the price document in its wire form: a JSON array
// whose first element carries the global discount and version stamp.
func (s *Server) GetPriceList(c *gin.Context) {
	list, err := s.pricelistSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	payload := make([]interface{}, 0, len(list.Categories)+1)
	payload = append(payload, gin.H{
		"Discount": list.Discount,
		"Version":  list.Version,
	})
	for _, category := range list.Categories {
		payload = append(payload, category)
	}

	c.JSON(http.StatusOK, payload)
}

type updatePricelistDiscountRequest struct {
	Discount json.Number `json:"Discount"`
}

func (s *Server) UpdatePriceListDiscount(c *gin.Context) {
	var req updatePricelistDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	discount, err := req.Discount.Float64()
	if err != nil {
		AbortWithError(c, newValidationError("Discount", "invalid_discount", "invalid value"))
		return
	}

	if err := s.pricelistSvc.SetDiscount(c.Request.Context(), discount); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "discount updated"})
}
