package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	checkoutdomain "github.com/klimatech/storefront/internal/checkout/domain"
	notificationdomain "github.com/klimatech/storefront/internal/notification/domain"
	orderdomain "github.com/klimatech/storefront/internal/order/domain"
	"go.uber.org/zap"
)

type notificationStub struct {
	created []notificationdomain.CreateRequest
	err     error
}

func (s *notificationStub) List(ctx context.Context) ([]notificationdomain.Notification, error) {
	return nil, nil
}

func (s *notificationStub) Get(ctx context.Context, id int64) (*notificationdomain.Notification, error) {
	return nil, notificationdomain.ErrNotFound
}

func (s *notificationStub) Create(ctx context.Context, req notificationdomain.CreateRequest) (*notificationdomain.Notification, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, req)
	return &notificationdomain.Notification{ID: int64(len(s.created)), Type: req.Type}, nil
}

func (s *notificationStub) MarkRead(ctx context.Context, id int64) error { return nil }

func (s *notificationStub) Delete(ctx context.Context, id int64) error { return nil }

type orderStub struct {
	created []orderdomain.CreateRequest
	err     error
}

func (s *orderStub) Create(ctx context.Context, req orderdomain.CreateRequest) (*orderdomain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, req)
	return &orderdomain.Order{ID: 7, Status: orderdomain.StatusProcessing}, nil
}

func (s *orderStub) Get(ctx context.Context, id int64) (*orderdomain.Order, error) {
	return nil, orderdomain.ErrOrderNotFound
}

func (s *orderStub) ListAll(ctx context.Context) ([]orderdomain.Order, error) { return nil, nil }

func (s *orderStub) ListByUser(ctx context.Context, userID int64) ([]orderdomain.Order, error) {
	return nil, nil
}

func (s *orderStub) TransitionStatus(ctx context.Context, id int64, target orderdomain.Status) (*orderdomain.Order, error) {
	return nil, orderdomain.ErrOrderNotFound
}

func (s *orderStub) Stats(ctx context.Context) (*orderdomain.Stats, error) {
	return &orderdomain.Stats{}, nil
}

func newTestService(notifications *notificationStub, orders *orderStub) checkoutdomain.Service {
	return &Service{
		baseURL:       "https://example.com",
		log:           zap.NewNop(),
		notifications: notifications,
		orders:        orders,
	}
}

func validRequest() checkoutdomain.SubmitRequest {
	return checkoutdomain.SubmitRequest{
		Cart: []checkoutdomain.CartItem{
			{ProductID: 101, Name: "AC-100", Price: 45990, Quantity: 2},
			{ProductID: 102, Name: "Thermostat", Price: 1500, Quantity: 1},
		},
		Contact: checkoutdomain.Contact{
			Name:    "Ivan Petrov",
			Phone:   "+7 (900) 123-45-67",
			Email:   "ivan@example.com",
			Address: "Moscow, Lenina 1",
		},
	}
}

func TestSubmitOrderGuestWritesNotificationOnly(t *testing.T) {
	notifications := &notificationStub{}
	orders := &orderStub{}
	svc := newTestService(notifications, orders)

	result, err := svc.SubmitOrder(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("failed to submit order: %v", err)
	}
	if result.TotalPrice != 93480 {
		t.Fatalf("expected total 93480, got %v", result.TotalPrice)
	}
	if result.OrderID != nil {
		t.Fatal("expected no order for a guest checkout")
	}
	if len(notifications.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications.created))
	}
	if len(orders.created) != 0 {
		t.Fatalf("expected no orders, got %d", len(orders.created))
	}

	req := notifications.created[0]
	if req.Type != notificationdomain.TypePurchase {
		t.Fatalf("expected purchase notification, got %s", req.Type)
	}
	if !notificationdomain.IsOrderDescription(req.Description) {
		t.Fatal("expected rendered order description")
	}
	if req.Total != notificationdomain.FormatPrice(93480) {
		t.Fatalf("unexpected total %q", req.Total)
	}
}

func TestSubmitOrderAuthenticatedWritesBoth(t *testing.T) {
	notifications := &notificationStub{}
	orders := &orderStub{}
	svc := newTestService(notifications, orders)

	userID := int64(55)
	req := validRequest()
	req.UserID = &userID

	result, err := svc.SubmitOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("failed to submit order: %v", err)
	}
	if result.OrderID == nil || *result.OrderID != 7 {
		t.Fatalf("expected order id 7, got %v", result.OrderID)
	}
	if len(orders.created) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders.created))
	}
	if orders.created[0].TotalPrice != 93480 {
		t.Fatalf("expected order total 93480, got %v", orders.created[0].TotalPrice)
	}
}

func TestSubmitOrderSucceedsWhenOrderWriteFails(t *testing.T) {
	notifications := &notificationStub{}
	orders := &orderStub{err: errors.New("db down")}
	svc := newTestService(notifications, orders)

	userID := int64(55)
	req := validRequest()
	req.UserID = &userID

	result, err := svc.SubmitOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("expected success despite order failure, got %v", err)
	}
	if result.OrderID != nil {
		t.Fatal("expected no order id when the order write fails")
	}
	if len(notifications.created) != 1 {
		t.Fatalf("expected the notification to survive, got %d", len(notifications.created))
	}
}

func TestSubmitOrderFailsWhenNotificationFails(t *testing.T) {
	notifications := &notificationStub{err: errors.New("db down")}
	orders := &orderStub{}
	svc := newTestService(notifications, orders)

	userID := int64(55)
	req := validRequest()
	req.UserID = &userID

	if _, err := svc.SubmitOrder(context.Background(), req); err == nil {
		t.Fatal("expected error when the notification write fails")
	}
	if len(orders.created) != 0 {
		t.Fatal("expected no order when the notification write fails")
	}
}

func TestSubmitOrderValidation(t *testing.T) {
	svc := newTestService(&notificationStub{}, &orderStub{})

	empty := validRequest()
	empty.Cart = nil
	if _, err := svc.SubmitOrder(context.Background(), empty); err != checkoutdomain.ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	badItem := validRequest()
	badItem.Cart[0].Quantity = 0
	if _, err := svc.SubmitOrder(context.Background(), badItem); err != checkoutdomain.ErrInvalidCartItem {
		t.Fatalf("expected ErrInvalidCartItem, got %v", err)
	}

	noAddress := validRequest()
	noAddress.Contact.Address = " "
	if _, err := svc.SubmitOrder(context.Background(), noAddress); err != checkoutdomain.ErrMissingContact {
		t.Fatalf("expected ErrMissingContact, got %v", err)
	}

	badPhone := validRequest()
	badPhone.Contact.Phone = "8 900 123 45 67"
	if _, err := svc.SubmitOrder(context.Background(), badPhone); err != checkoutdomain.ErrInvalidPhone {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}

	longComments := validRequest()
	longComments.Contact.Comments = strings.Repeat("щ", checkoutdomain.MaxCommentsLen+1)
	if _, err := svc.SubmitOrder(context.Background(), longComments); err != checkoutdomain.ErrCommentsTooLong {
		t.Fatalf("expected ErrCommentsTooLong, got %v", err)
	}

	atLimit := validRequest()
	atLimit.Contact.Comments = strings.Repeat("щ", checkoutdomain.MaxCommentsLen)
	if _, err := svc.SubmitOrder(context.Background(), atLimit); err != nil {
		t.Fatalf("expected comments at the limit to pass, got %v", err)
	}
}

func TestValidPhone(t *testing.T) {
	for phone, want := range map[string]bool{
		"+7 (900) 123-45-67": true,
		"+79001234567":       true,
		"+7 900 123 45 67":   true,
		"89001234567":        false,
		"+7 (900) 123-45-6":  false,
		"not a phone":        false,
	} {
		if got := checkoutdomain.ValidPhone(phone); got != want {
			t.Fatalf("ValidPhone(%q) = %v, want %v", phone, got, want)
		}
	}
}
