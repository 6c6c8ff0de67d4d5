package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"smartrent_backend/internal/logger"
	"smartrent_backend/internal/mailer"
	"smartrent_backend/internal/models"
	"smartrent_backend/internal/repositories"
	"smartrent_backend/pkg/apperrors"
)

type InvoiceService interface {
	Generate(ctx context.Context, paymentID uint) (*models.Invoice, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Invoice, error)
	GetByID(ctx context.Context, id uint) (*models.Invoice, error)
	FilePath(invoice *models.Invoice) string
	SendByEmail(ctx context.Context, id uint) error
}

type InvoiceServiceImpl struct {
	invoices  repositories.InvoiceRepository
	payments  repositories.SubscriptionRepository
	users     repositories.UserRepository
	mailer    *mailer.Mailer
	publicDir string
}

func NewInvoiceService(
	invoices repositories.InvoiceRepository,
	payments repositories.SubscriptionRepository,
	users repositories.UserRepository,
	m *mailer.Mailer,
	publicDir string,
) InvoiceService {
	return &InvoiceServiceImpl{
		invoices:  invoices,
		payments:  payments,
		users:     users,
		mailer:    m,
		publicDir: publicDir,
	}
}

// Generate renders the PDF receipt for a payment and records the
// Invoice row. Generating twice for the same payment returns the
// existing invoice.
func (s *InvoiceServiceImpl) Generate(ctx context.Context, paymentID uint) (*models.Invoice, error) {
	if existing, err := s.invoices.FindByPayment(paymentID); err == nil {
		return existing, nil
	}

	payment, err := s.payments.FindPaymentByID(paymentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.NewNotFoundError("invoices", "Pago no encontrado")
		}
		return nil, apperrors.InternalError(err)
	}

	user := payment.User
	if user == nil {
		user, err = s.users.FindByID(payment.UserID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	dir := filepath.Join(s.publicDir, "invoices")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.InternalError(err)
	}

	fileName := fmt.Sprintf("invoice_%d.pdf", payment.ID)
	fullPath := filepath.Join(dir, fileName)

	if err := s.renderPDF(fullPath, payment, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	invoice := &models.Invoice{
		UserID:            payment.UserID,
		PaymentID:         payment.ID,
		PdfURL:            "/public/invoices/" + fileName,
		Amount:            payment.Amount,
		Plan:              payment.Plan,
		AuthorizationCode: payment.AuthorizationCode,
		Last4:             payment.CardLast4,
	}
	if err := s.invoices.Create(invoice); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "invoice generated", "invoice_id", invoice.ID, "payment_id", payment.ID)
	return invoice, nil
}

func (s *InvoiceServiceImpl) renderPDF(path string, payment *models.SubscriptionPayment, user *models.User) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252, so accented strings go through the
	// translator.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, tr("SmartRent+ - Boleta de Suscripción"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	authCode := "-"
	if payment.AuthorizationCode != nil {
		authCode = *payment.AuthorizationCode
	}
	last4 := "----"
	if payment.CardLast4 != nil {
		last4 = *payment.CardLast4
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Usuario: %s", user.Nombre),
		fmt.Sprintf("Correo: %s", user.Correo),
		fmt.Sprintf("Plan: %s", payment.Plan),
		fmt.Sprintf("Monto: $%.0f", payment.Amount),
		fmt.Sprintf("Autorización: %s", authCode),
		fmt.Sprintf("Últimos 4 dígitos: %s", last4),
		fmt.Sprintf("Fecha: %s", time.Now().Format("02-01-2006 15:04:05")),
	}
	for _, line := range lines {
		pdf.CellFormat(0, 8, tr(line), "", 1, "L", false, 0, "")
	}

	return pdf.OutputFileAndClose(path)
}

func (s *InvoiceServiceImpl) ListByUser(ctx context.Context, userID uint) ([]models.Invoice, error) {
	invoices, err := s.invoices.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return invoices, nil
}

func (s *InvoiceServiceImpl) GetByID(ctx context.Context, id uint) (*models.Invoice, error) {
	invoice, err := s.invoices.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInvoiceNotFound) {
			return nil, apperrors.NewNotFoundError("invoices", "Boleta no encontrada")
		}
		return nil, apperrors.InternalError(err)
	}
	return invoice, nil
}

// FilePath maps the stored public URL back to the file on disk.
func (s *InvoiceServiceImpl) FilePath(invoice *models.Invoice) string {
	return filepath.Join(s.publicDir, "invoices", filepath.Base(invoice.PdfURL))
}

func (s *InvoiceServiceImpl) SendByEmail(ctx context.Context, id uint) error {
	invoice, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(invoice.UserID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.mailer.SendInvoice(user.Correo, user.Nombre, invoice.Plan, s.FilePath(invoice)); err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternalServiceError, "invoices",
			"No se pudo enviar la boleta por correo", 502)
	}
	return nil
}
