package service

import (
	"context"
	"math"
	"strings"

	checkoutdomain "github.com/klimatech/storefront/internal/checkout/domain"
	"github.com/klimatech/storefront/internal/config"
	notificationdomain "github.com/klimatech/storefront/internal/notification/domain"
	orderdomain "github.com/klimatech/storefront/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Config        config.Config
	Log           *zap.Logger
	Notifications notificationdomain.Service
	Orders        orderdomain.Service
}

type Service struct {
	baseURL       string
	log           *zap.Logger
	notifications notificationdomain.Service
	orders        orderdomain.Service
}

func New(p Params) checkoutdomain.Service {
	return &Service{
		baseURL:       p.Config.PublicBaseURL,
		log:           p.Log.Named("checkout.service"),
		notifications: p.Notifications,
		orders:        p.Orders,
	}
}

// SubmitOrder records a purchase notification and, for authenticated
// customers, an order history entry. The notification is the primary
// record of intent: a failed order write is logged and does not fail
// the request.
func (s *Service) SubmitOrder(ctx context.Context, req checkoutdomain.SubmitRequest) (*checkoutdomain.SubmitResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	total := cartTotal(req.Cart)

	items := make([]notificationdomain.LineItem, 0, len(req.Cart))
	for _, line := range req.Cart {
		items = append(items, notificationdomain.LineItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}

	pending := &notificationdomain.Notification{
		Name:     strings.TrimSpace(req.Contact.Name),
		Phone:    strings.TrimSpace(req.Contact.Phone),
		Email:    strings.TrimSpace(req.Contact.Email),
		Address:  strings.TrimSpace(req.Contact.Address),
		Comments: strings.TrimSpace(req.Contact.Comments),
		Total:    notificationdomain.FormatPrice(total),
	}
	pending.Items = items

	notification, err := s.notifications.Create(ctx, notificationdomain.CreateRequest{
		Type:        notificationdomain.TypePurchase,
		Name:        pending.Name,
		Phone:       pending.Phone,
		Email:       pending.Email,
		Address:     pending.Address,
		Description: notificationdomain.RenderOrderDescription(pending, s.baseURL),
		Items:       items,
		Total:       pending.Total,
		Comments:    pending.Comments,
	})
	if err != nil {
		return nil, err
	}

	result := &checkoutdomain.SubmitResult{
		NotificationID: notification.ID,
		TotalPrice:     total,
	}

	if req.UserID == nil {
		return result, nil
	}

	orderItems := make([]orderdomain.OrderItem, 0, len(req.Cart))
	for _, line := range req.Cart {
		orderItems = append(orderItems, orderdomain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}

	order, err := s.orders.Create(ctx, orderdomain.CreateRequest{
		UserID:          req.UserID,
		CustomerName:    pending.Name,
		ContactPhone:    pending.Phone,
		ContactEmail:    pending.Email,
		ShippingAddress: pending.Address,
		Comments:        pending.Comments,
		TotalPrice:      total,
		Items:           orderItems,
	})
	if err != nil {
		s.log.Warn("order history write failed after notification",
			zap.Int64("notification_id", notification.ID),
			zap.Int64p("user_id", req.UserID),
			zap.Error(err),
		)
		return result, nil
	}

	orderID := order.ID
	result.OrderID = &orderID
	return result, nil
}

func validate(req checkoutdomain.SubmitRequest) error {
	if len(req.Cart) == 0 {
		return checkoutdomain.ErrEmptyCart
	}
	for _, line := range req.Cart {
		if line.Quantity < 1 || line.Price < 0 || math.IsNaN(line.Price) {
			return checkoutdomain.ErrInvalidCartItem
		}
	}
	if strings.TrimSpace(req.Contact.Name) == "" ||
		strings.TrimSpace(req.Contact.Phone) == "" ||
		strings.TrimSpace(req.Contact.Address) == "" {
		return checkoutdomain.ErrMissingContact
	}
	if !checkoutdomain.ValidPhone(strings.TrimSpace(req.Contact.Phone)) {
		return checkoutdomain.ErrInvalidPhone
	}
	if len([]rune(req.Contact.Comments)) > checkoutdomain.MaxCommentsLen {
		return checkoutdomain.ErrCommentsTooLong
	}
	return nil
}

func cartTotal(cart []checkoutdomain.CartItem) float64 {
	var total float64
	for _, line := range cart {
		total += line.Price * float64(line.Quantity)
	}
	return total
}
