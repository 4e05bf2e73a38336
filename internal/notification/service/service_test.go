package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/klimatech/storefront/internal/notification/domain"
	"github.com/klimatech/storefront/internal/notification/repository"
	"github.com/klimatech/storefront/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&domain.Notification{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	return New(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	}), dbConn
}

func TestCreateFillsEmptyFieldsWithMarker(t *testing.T) {
	svc, _ := newTestService(t)

	n, err := svc.Create(context.Background(), domain.CreateRequest{Name: "Ivan"})
	if err != nil {
		t.Fatalf("failed to create notification: %v", err)
	}
	if n.Type != domain.TypeConsultation {
		t.Fatalf("expected default type consultation, got %s", n.Type)
	}
	for field, value := range map[string]string{
		"phone":       n.Phone,
		"email":       n.Email,
		"address":     n.Address,
		"description": n.Description,
		"total":       n.Total,
		"comments":    n.Comments,
	} {
		if value != domain.NoData {
			t.Fatalf("expected %s to be the no-data marker, got %q", field, value)
		}
	}
}

func TestCreateRejectsMissingName(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Create(context.Background(), domain.CreateRequest{Phone: "+7 900 000 00 00"}); err != domain.ErrMissingName {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Create(context.Background(), domain.CreateRequest{Name: "Ivan", Type: "spam"}); err != domain.ErrInvalidType {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)

	n, err := svc.Create(context.Background(), domain.CreateRequest{Name: "Ivan"})
	if err != nil {
		t.Fatalf("failed to create notification: %v", err)
	}

	if err := svc.MarkRead(context.Background(), n.ID); err != nil {
		t.Fatalf("first mark read failed: %v", err)
	}
	if err := svc.MarkRead(context.Background(), n.ID); err != nil {
		t.Fatalf("second mark read failed: %v", err)
	}

	got, err := svc.Get(context.Background(), n.ID)
	if err != nil {
		t.Fatalf("failed to get notification: %v", err)
	}
	if !got.IsRead {
		t.Fatal("expected notification to be read")
	}
}

func TestMarkReadMissing(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.MarkRead(context.Background(), 42); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMissing(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.Delete(context.Background(), 42); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

const legacyOrderDescription = "###### NEW ORDER ######\n\n" +
	"====== CONTACT INFO ======\n" +
	"• Customer name: Ivan Petrov\n\n" +
	"====== ORDER ITEMS ======\n" +
	"[Item 1]\n" +
	"▶ Name: AC-100\n" +
	"▶ Quantity: 2\n" +
	"▶ Price per unit: 45990 ₽\n" +
	"▶ Subtotal: 91980 ₽\n\n" +
	"====== TOTAL ======\n" +
	"• Order total: 91980 ₽\n"

func seedLegacyRow(t *testing.T, dbConn *gorm.DB, id int64, description string) {
	t.Helper()

	row := &domain.Notification{
		ID:          id,
		Type:        domain.TypePurchase,
		Name:        "Ivan Petrov",
		Phone:       domain.NoData,
		Email:       domain.NoData,
		Address:     domain.NoData,
		Description: description,
		Total:       "91980 ₽",
		Comments:    domain.NoData,
	}
	if err := dbConn.Create(row).Error; err != nil {
		t.Fatalf("failed to seed legacy row: %v", err)
	}
}

func TestGetBackfillsItemsFromLegacyDescription(t *testing.T) {
	svc, dbConn := newTestService(t)
	seedLegacyRow(t, dbConn, 900, legacyOrderDescription)

	got, err := svc.Get(context.Background(), 900)
	if err != nil {
		t.Fatalf("failed to get notification: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 parsed item, got %d", len(got.Items))
	}
	item := got.Items[0]
	if item.Name != "AC-100" || item.Quantity != 2 || item.Price != 45990 {
		t.Fatalf("unexpected parsed item %+v", item)
	}
}

func TestListBackfillsItemsFromLegacyDescription(t *testing.T) {
	svc, dbConn := newTestService(t)
	seedLegacyRow(t, dbConn, 901, legacyOrderDescription)

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("failed to list notifications: %v", err)
	}
	if len(list) != 1 || len(list[0].Items) != 1 {
		t.Fatalf("expected the listed row to carry parsed items, got %+v", list)
	}
}

func TestGetServesFreeTextRowAsIs(t *testing.T) {
	svc, dbConn := newTestService(t)
	seedLegacyRow(t, dbConn, 902, "Please call me about maintenance")

	got, err := svc.Get(context.Background(), 902)
	if err != nil {
		t.Fatalf("failed to get notification: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("expected no items for free text, got %+v", got.Items)
	}
}
