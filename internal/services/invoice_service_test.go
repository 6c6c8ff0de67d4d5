package services

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smartrent_backend/internal/models"
	"smartrent_backend/internal/repositories"
	"smartrent_backend/pkg/apperrors"
)

func newInvoiceService(t *testing.T) (InvoiceService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewInvoiceService(
		repositories.NewInvoiceRepository(db),
		repositories.NewSubscriptionRepository(db),
		repositories.NewUserRepository(db),
		newTestMailer(),
		t.TempDir(),
	)
	return svc, db
}

func createSettledPayment(t *testing.T, db *gorm.DB, userID uint) *models.SubscriptionPayment {
	t.Helper()
	authCode := "1213"
	last4 := "6623"
	payment := &models.SubscriptionPayment{
		UserID:            userID,
		Plan:              "PREMIUM",
		BuyOrder:          "ORD-TEST-1",
		Amount:            9990,
		Token:             "tok-test-1",
		Status:            models.PaymentStatusAuthorized,
		AuthorizationCode: &authCode,
		CardLast4:         &last4,
	}
	require.NoError(t, db.Create(payment).Error)
	return payment
}

func TestGenerateInvoiceWritesPDF(t *testing.T) {
	svc, db := newInvoiceService(t)
	user := createTestUser(t, db, "buyer@test.com")
	payment := createSettledPayment(t, db, user.ID)

	invoice, err := svc.Generate(context.Background(), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, invoice.PaymentID)
	assert.Equal(t, 9990.0, invoice.Amount)
	assert.Contains(t, invoice.PdfURL, "/public/invoices/")

	info, err := os.Stat(svc.FilePath(invoice))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateInvoiceEncodesAccentsForCoreFonts(t *testing.T) {
	svc, db := newInvoiceService(t)
	user := createTestUser(t, db, "buyer@test.com")
	payment := createSettledPayment(t, db, user.ID)

	invoice, err := svc.Generate(context.Background(), payment.ID)
	require.NoError(t, err)

	data, err := os.ReadFile(svc.FilePath(invoice))
	require.NoError(t, err)

	text := pdfStreamText(t, data)
	// Helvetica is cp1252: "ó" must land as the single byte 0xF3, not
	// as the two-byte UTF-8 sequence.
	assert.Contains(t, text, "Suscripci\xf3n")
	assert.NotContains(t, text, "Suscripción")
}

func TestGenerateInvoiceIsIdempotent(t *testing.T) {
	svc, db := newInvoiceService(t)
	user := createTestUser(t, db, "buyer@test.com")
	payment := createSettledPayment(t, db, user.ID)
	ctx := context.Background()

	first, err := svc.Generate(ctx, payment.ID)
	require.NoError(t, err)

	second, err := svc.Generate(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGenerateInvoiceUnknownPayment(t *testing.T) {
	svc, _ := newInvoiceService(t)

	_, err := svc.Generate(context.Background(), 999)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestListInvoicesByUser(t *testing.T) {
	svc, db := newInvoiceService(t)
	user := createTestUser(t, db, "buyer@test.com")
	payment := createSettledPayment(t, db, user.ID)

	_, err := svc.Generate(context.Background(), payment.ID)
	require.NoError(t, err)

	invoices, err := svc.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, invoices, 1)

	none, err := svc.ListByUser(context.Background(), user.ID+1)
	require.NoError(t, err)
	assert.Empty(t, none)
}
