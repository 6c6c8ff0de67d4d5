package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smartrent_backend/internal/gateway/webpay"
	"smartrent_backend/internal/models"
	"smartrent_backend/internal/repositories"
	"smartrent_backend/pkg/apperrors"
)

// fakeGateway answers like Webpay without the network.
type fakeGateway struct {
	createErr    error
	commitErr    error
	responseCode int
	createCalls  int
	commitCalls  int
}

func (f *fakeGateway) Create(ctx context.Context, req webpay.CreateRequest) (*webpay.CreateResponse, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &webpay.CreateResponse{
		Token: "tok-" + req.BuyOrder,
		URL:   "https://webpay.test/init",
	}, nil
}

func (f *fakeGateway) Commit(ctx context.Context, token string) (*webpay.CommitResponse, error) {
	f.commitCalls++
	if f.commitErr != nil {
		return nil, f.commitErr
	}
	return &webpay.CommitResponse{
		Status:            "AUTHORIZED",
		BuyOrder:          "ORD-1",
		AuthorizationCode: "1213",
		PaymentTypeCode:   "VN",
		ResponseCode:      f.responseCode,
		CardDetail:        webpay.CardDetail{CardNumber: "6623"},
	}, nil
}

func newPaymentService(t *testing.T, gw webpay.Gateway) (PaymentService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewPaymentService(
		repositories.NewSubscriptionRepository(db),
		repositories.NewUserRepository(db),
		gw,
		"http://localhost:3000/api/subscriptions/confirm",
	)
	return svc, db
}

func TestInitiateCreatesPendingPayment(t *testing.T) {
	gw := &fakeGateway{}
	svc, db := newPaymentService(t, gw)
	user := createTestUser(t, db, "payer@test.com")

	resp, err := svc.Initiate(context.Background(), user.ID, "premium")
	require.NoError(t, err)
	assert.Equal(t, 9990.0, resp.Amount)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.URL)
	assert.Equal(t, 1, gw.createCalls)

	var payment models.SubscriptionPayment
	require.NoError(t, db.Where("token = ?", resp.Token).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Equal(t, "PREMIUM", payment.Plan)
	assert.Equal(t, user.ID, payment.UserID)
}

func TestInitiateRejectsUnknownPlan(t *testing.T) {
	gw := &fakeGateway{}
	svc, db := newPaymentService(t, gw)
	user := createTestUser(t, db, "payer@test.com")

	_, err := svc.Initiate(context.Background(), user.ID, "GOLD")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeUnknownPlan, appErr.Code)
	assert.Equal(t, 0, gw.createCalls)
}

func TestInitiateUnknownUser(t *testing.T) {
	svc, _ := newPaymentService(t, &fakeGateway{})

	_, err := svc.Initiate(context.Background(), 9999, "BASIC")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestConfirmActivatesSubscription(t *testing.T) {
	gw := &fakeGateway{}
	svc, db := newPaymentService(t, gw)
	user := createTestUser(t, db, "payer@test.com")
	ctx := context.Background()

	initiated, err := svc.Initiate(ctx, user.ID, "BASIC")
	require.NoError(t, err)

	result, err := svc.Confirm(ctx, initiated.Token, "")
	require.NoError(t, err)
	assert.True(t, result.Approved)
	assert.Equal(t, "AUTHORIZED", result.Payment.Status)
	require.NotNil(t, result.Payment.AuthorizationCode)
	assert.Equal(t, "1213", *result.Payment.AuthorizationCode)

	var subs []models.ActiveSubscription
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&subs).Error)
	require.Len(t, subs, 1)
	assert.Equal(t, "BASIC", subs[0].Plan)
	assert.Equal(t, models.SubscriptionActive, subs[0].Status)
	assert.True(t, subs[0].EndDate.After(subs[0].StartDate))
}

func TestConfirmIsIdempotent(t *testing.T) {
	gw := &fakeGateway{}
	svc, db := newPaymentService(t, gw)
	user := createTestUser(t, db, "payer@test.com")
	ctx := context.Background()

	initiated, err := svc.Initiate(ctx, user.ID, "BASIC")
	require.NoError(t, err)

	first, err := svc.Confirm(ctx, initiated.Token, "")
	require.NoError(t, err)
	require.True(t, first.Approved)

	// The second confirmation must not hit the gateway again nor
	// create a second subscription.
	second, err := svc.Confirm(ctx, initiated.Token, "")
	require.NoError(t, err)
	assert.True(t, second.Approved)
	assert.Equal(t, 1, gw.commitCalls)

	var count int64
	require.NoError(t, db.Model(&models.ActiveSubscription{}).
		Where("user_id = ? AND status = ?", user.ID, models.SubscriptionActive).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConfirmSecondPaymentKeepsSingleActiveSubscription(t *testing.T) {
	gw := &fakeGateway{}
	svc, db := newPaymentService(t, gw)
	user := createTestUser(t, db, "payer@test.com")
	ctx := context.Background()

	first, err := svc.Initiate(ctx, user.ID, "BASIC")
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, first.Token, "")
	require.NoError(t, err)

	// Buy orders are millisecond-stamped, keep them distinct.
	time.Sleep(2 * time.Millisecond)

	second, err := svc.Initiate(ctx, user.ID, "PREMIUM")
	require.NoError(t, err)
	result, err := svc.Confirm(ctx, second.Token, "")
	require.NoError(t, err)
	assert.True(t, result.Approved)

	var count int64
	require.NoError(t, db.Model(&models.ActiveSubscription{}).
		Where("user_id = ? AND status = ?", user.ID, models.SubscriptionActive).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConfirmAbortedByUser(t *testing.T) {
	gw := &fakeGateway{}
	svc, db := newPaymentService(t, gw)
	user := createTestUser(t, db, "payer@test.com")
	ctx := context.Background()

	initiated, err := svc.Initiate(ctx, user.ID, "BASIC")
	require.NoError(t, err)

	// TBK_TOKEN without token_ws means the user backed out.
	result, err := svc.Confirm(ctx, "", initiated.Token)
	require.NoError(t, err)
	assert.False(t, result.Approved)
	assert.Equal(t, models.PaymentStatusFailed, result.Payment.Status)
	assert.Equal(t, 0, gw.commitCalls)

	var count int64
	require.NoError(t, db.Model(&models.ActiveSubscription{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConfirmRejectedByGateway(t *testing.T) {
	gw := &fakeGateway{responseCode: -1}
	svc, db := newPaymentService(t, gw)
	user := createTestUser(t, db, "payer@test.com")
	ctx := context.Background()

	initiated, err := svc.Initiate(ctx, user.ID, "BASIC")
	require.NoError(t, err)

	result, err := svc.Confirm(ctx, initiated.Token, "")
	require.NoError(t, err)
	assert.False(t, result.Approved)
	assert.Equal(t, models.PaymentStatusFailed, result.Payment.Status)

	var count int64
	require.NoError(t, db.Model(&models.ActiveSubscription{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConfirmGatewayErrorFailsPayment(t *testing.T) {
	gw := &fakeGateway{commitErr: errors.New("timeout")}
	svc, db := newPaymentService(t, gw)
	user := createTestUser(t, db, "payer@test.com")
	ctx := context.Background()

	initiated, err := svc.Initiate(ctx, user.ID, "BASIC")
	require.NoError(t, err)

	result, err := svc.Confirm(ctx, initiated.Token, "")
	require.NoError(t, err)
	assert.False(t, result.Approved)
	assert.Equal(t, models.PaymentStatusFailed, result.Payment.Status)
}

func TestConfirmWithoutTokens(t *testing.T) {
	svc, _ := newPaymentService(t, &fakeGateway{})

	_, err := svc.Confirm(context.Background(), "", "")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestActiveSubscriptionNoneIsNil(t *testing.T) {
	svc, db := newPaymentService(t, &fakeGateway{})
	user := createTestUser(t, db, "payer@test.com")

	sub, err := svc.ActiveSubscription(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, sub)
}
