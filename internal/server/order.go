package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	checkoutdomain "github.com/klimatech/storefront/internal/checkout/domain"
	orderdomain "github.com/klimatech/storefront/internal/order/domain"
)

type submitOrderRequest struct {
	UserID   *int64                    `json:"user_id"`
	Name     string                    `json:"name"`
	Phone    string                    `json:"phone"`
	Email    string                    `json:"email"`
	Address  string                    `json:"address"`
	Comments string                    `json:"comments"`
	Items    []checkoutdomain.CartItem `json:"items"`
}

// SubmitOrder runs the checkout workflow: a purchase notification is
// always recorded, an order history entry only for known users.
func (s *Server) SubmitOrder(c *gin.Context) {
	var req submitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.checkoutSvc.SubmitOrder(c.Request.Context(), checkoutdomain.SubmitRequest{
		Cart: req.Items,
		Contact: checkoutdomain.Contact{
			Name:     req.Name,
			Phone:    req.Phone,
			Email:    req.Email,
			Address:  req.Address,
			Comments: req.Comments,
		},
		UserID: req.UserID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListUserOrders(c *gin.Context) {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.orderSvc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAllOrders(c *gin.Context) {
	resp, err := s.orderSvc.ListAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrderStats(c *gin.Context) {
	resp, err := s.orderSvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) UpdateOrderStatus(c *gin.Context) {
	orderID, err := parseIDParam(c, "orderId")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	target := orderdomain.Status(strings.ToLower(strings.TrimSpace(req.Status)))
	resp, err := s.orderSvc.TransitionStatus(c.Request.Context(), orderID, target)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
