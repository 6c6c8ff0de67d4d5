package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"smartrent_backend/internal/gateway/webpay"
	"smartrent_backend/internal/logger"
	"smartrent_backend/internal/models"
	"smartrent_backend/internal/repositories"
	"smartrent_backend/internal/services/dto"
	"smartrent_backend/pkg/apperrors"
)

const subscriptionDays = 30

// ConfirmResult is the outcome of a gateway confirmation, used by the
// handler to decide between the success and the fail redirect.
type ConfirmResult struct {
	Approved bool
	Payment  *models.SubscriptionPayment
	Commit   *webpay.CommitResponse
}

type PaymentService interface {
	Initiate(ctx context.Context, userID uint, plan string) (*dto.InitiatePaymentResponse, error)
	Confirm(ctx context.Context, tokenWS, tbkToken string) (*ConfirmResult, error)
	ActiveSubscription(ctx context.Context, userID uint) (*models.ActiveSubscription, error)
}

type PaymentServiceImpl struct {
	subscriptions repositories.SubscriptionRepository
	users         repositories.UserRepository
	gateway       webpay.Gateway
	confirmURL    string
}

func NewPaymentService(
	subscriptions repositories.SubscriptionRepository,
	users repositories.UserRepository,
	gateway webpay.Gateway,
	confirmURL string,
) PaymentService {
	return &PaymentServiceImpl{
		subscriptions: subscriptions,
		users:         users,
		gateway:       gateway,
		confirmURL:    confirmURL,
	}
}

// Initiate creates the gateway transaction and persists the PENDING
// payment row. An unrecognized plan is rejected instead of silently
// charging the cheapest price.
func (s *PaymentServiceImpl) Initiate(ctx context.Context, userID uint, plan string) (*dto.InitiatePaymentResponse, error) {
	plan = strings.ToUpper(strings.TrimSpace(plan))
	amount, ok := models.PlanPrices[plan]
	if !ok {
		return nil, apperrors.New(apperrors.CodeUnknownPlan, "payments",
			fmt.Sprintf("Plan desconocido: %s", plan), 400)
	}

	if _, err := s.users.FindByID(userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("payments", "Usuario no encontrado")
		}
		return nil, apperrors.InternalError(err)
	}

	buyOrder := fmt.Sprintf("ORD-%d", time.Now().UnixMilli())
	sessionID := uuid.NewString()

	created, err := s.gateway.Create(ctx, webpay.CreateRequest{
		BuyOrder:  buyOrder,
		SessionID: sessionID,
		Amount:    amount,
		ReturnURL: s.confirmURL,
	})
	if err != nil {
		return nil, err
	}
	if created.Token == "" || created.URL == "" {
		return nil, apperrors.New(apperrors.CodeExternalServiceError, "payments",
			"Error al generar la transacción Webpay", 502)
	}

	paymentType := "WEBPAY"
	payment := &models.SubscriptionPayment{
		UserID:      userID,
		Plan:        plan,
		BuyOrder:    buyOrder,
		Amount:      amount,
		Token:       created.Token,
		Status:      models.PaymentStatusPending,
		PaymentType: &paymentType,
	}
	if err := s.subscriptions.CreatePayment(payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "payment initiated",
		"user_id", userID, "plan", plan, "buy_order", buyOrder)

	return &dto.InitiatePaymentResponse{
		URL:      created.URL,
		Token:    created.Token,
		BuyOrder: buyOrder,
		Amount:   amount,
		Message:  "Transacción creada correctamente",
	}, nil
}

// Confirm resolves a gateway callback. TBK_TOKEN without token_ws means
// the user aborted at the gateway, which fails the payment without a
// commit call. Re-confirming an already settled payment is a no-op that
// returns the stored outcome.
func (s *PaymentServiceImpl) Confirm(ctx context.Context, tokenWS, tbkToken string) (*ConfirmResult, error) {
	if tokenWS == "" && tbkToken == "" {
		return nil, apperrors.NewBadRequestError("Token no recibido")
	}

	if tokenWS == "" {
		payment, err := s.failPayment(ctx, tbkToken)
		if err != nil {
			return nil, err
		}
		logger.CtxInfo(ctx, "payment aborted by user", "token", tbkToken)
		return &ConfirmResult{Approved: false, Payment: payment}, nil
	}

	payment, err := s.subscriptions.FindPaymentByToken(tokenWS)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.NewNotFoundError("payments", "Pago no encontrado")
		}
		return nil, apperrors.InternalError(err)
	}

	if payment.Status != models.PaymentStatusPending {
		logger.CtxInfo(ctx, "payment already settled, confirm is a no-op",
			"token", tokenWS, "status", payment.Status)
		return &ConfirmResult{
			Approved: payment.Status != models.PaymentStatusFailed,
			Payment:  payment,
		}, nil
	}

	commit, err := s.gateway.Commit(ctx, tokenWS)
	if err != nil {
		logger.CtxWarn(ctx, "gateway commit failed", "token", tokenWS, "error", err)
		failed, ferr := s.failPayment(ctx, tokenWS)
		if ferr != nil {
			return nil, ferr
		}
		return &ConfirmResult{Approved: false, Payment: failed}, nil
	}

	if !commit.Approved() {
		logger.CtxInfo(ctx, "payment rejected by gateway",
			"token", tokenWS, "response_code", commit.ResponseCode)
		failed, ferr := s.failPayment(ctx, tokenWS)
		if ferr != nil {
			return nil, ferr
		}
		return &ConfirmResult{Approved: false, Payment: failed, Commit: commit}, nil
	}

	reconciled, err := s.reconcile(ctx, payment, commit)
	if err != nil {
		return nil, err
	}
	return &ConfirmResult{Approved: true, Payment: reconciled, Commit: commit}, nil
}

// reconcile persists the gateway result on the payment row and
// activates the 30-day subscription. Activation is an atomic
// conditional insert; losing the race to a concurrent confirmation is
// not an error.
func (s *PaymentServiceImpl) reconcile(ctx context.Context, payment *models.SubscriptionPayment, commit *webpay.CommitResponse) (*models.SubscriptionPayment, error) {
	now := time.Now()

	status := commit.Status
	if status == "" {
		status = models.PaymentStatusAuthorized
	}
	authCode := commit.AuthorizationCode
	if authCode == "" {
		authCode = "-"
	}
	last4 := commit.CardDetail.CardNumber
	if last4 == "" {
		last4 = "----"
	}
	paymentType := commit.PaymentTypeCode
	if paymentType == "" {
		paymentType = "WEBPAY"
	}

	txDate := now
	if commit.TransactionDate != "" {
		if parsed, err := time.Parse(time.RFC3339, commit.TransactionDate); err == nil {
			txDate = parsed
		}
	}

	payment.Status = status
	payment.AuthorizationCode = &authCode
	payment.CardLast4 = &last4
	payment.PaymentType = &paymentType
	payment.TransactionDate = &txDate
	payment.ConfirmedAt = &now
	payment.User = nil

	if err := s.subscriptions.UpdatePayment(payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	sub := &models.ActiveSubscription{
		UserID:    payment.UserID,
		Plan:      payment.Plan,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, subscriptionDays),
		Status:    models.SubscriptionActive,
	}
	created, err := s.subscriptions.Activate(sub)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if created {
		logger.CtxInfo(ctx, "subscription activated",
			"user_id", payment.UserID, "plan", payment.Plan)
	} else {
		logger.CtxInfo(ctx, "user already has an active subscription",
			"user_id", payment.UserID)
	}

	return payment, nil
}

func (s *PaymentServiceImpl) failPayment(ctx context.Context, token string) (*models.SubscriptionPayment, error) {
	payment, err := s.subscriptions.FindPaymentByToken(token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.NewNotFoundError("payments", "Pago no encontrado")
		}
		return nil, apperrors.InternalError(err)
	}

	if payment.Status != models.PaymentStatusPending {
		return payment, nil
	}

	payment.Status = models.PaymentStatusFailed
	payment.User = nil
	if err := s.subscriptions.UpdatePayment(payment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return payment, nil
}

func (s *PaymentServiceImpl) ActiveSubscription(ctx context.Context, userID uint) (*models.ActiveSubscription, error) {
	sub, err := s.subscriptions.FindActiveByUser(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return sub, nil
}
