package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartrent_backend/internal/config"
	"smartrent_backend/internal/middleware"
	"smartrent_backend/internal/services"
	"smartrent_backend/internal/services/dto"
)

type SubscriptionHandler struct {
	BaseHandler
	payments services.PaymentService
	cfg      *config.Config
	jwtAuth  gin.HandlerFunc
}

func NewSubscriptionHandler(payments services.PaymentService, cfg *config.Config, jwtAuth gin.HandlerFunc) *SubscriptionHandler {
	return &SubscriptionHandler{payments: payments, cfg: cfg, jwtAuth: jwtAuth}
}

func (h *SubscriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	subs := rg.Group("/subscriptions")
	{
		subs.POST("/pay", h.jwtAuth, h.Pay)

		// Transbank calls these back without our JWT, so they stay open.
		subs.GET("/confirm", h.ConfirmRedirect)
		subs.POST("/confirm", h.ConfirmReceipt)

		subs.GET("/mine/:userId", h.jwtAuth, h.Active)
	}
}

func (h *SubscriptionHandler) Pay(c *gin.Context) {
	var req dto.PayRequest
	if !h.BindJSON(c, &req) {
		return
	}

	// The token's subject wins over whatever the body claims.
	userID := req.UserID
	if id, ok := middleware.UserID(c); ok {
		userID = id
	}

	resp, err := h.payments.Initiate(c.Request.Context(), userID, req.Plan)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, resp)
}

// ConfirmRedirect handles the browser return from Webpay and sends the
// user to the frontend success or failure page.
func (h *SubscriptionHandler) ConfirmRedirect(c *gin.Context) {
	tokenWS := c.Query("token_ws")
	tbkToken := c.Query("TBK_TOKEN")

	result, err := h.payments.Confirm(c.Request.Context(), tokenWS, tbkToken)
	if err != nil || !result.Approved {
		c.Redirect(http.StatusFound, h.cfg.Webpay.FailURL)
		return
	}
	c.Redirect(http.StatusFound, h.cfg.Webpay.SuccessURL)
}

// ConfirmReceipt handles the server-to-server POST confirmation and
// renders a small HTML receipt instead of redirecting.
func (h *SubscriptionHandler) ConfirmReceipt(c *gin.Context) {
	var req dto.ConfirmRequest
	_ = c.ShouldBind(&req)
	if req.TokenWS == "" {
		req.TokenWS = c.Query("token_ws")
	}
	if req.TbkToken == "" {
		req.TbkToken = c.Query("TBK_TOKEN")
	}

	result, err := h.payments.Confirm(c.Request.Context(), req.TokenWS, req.TbkToken)
	if err != nil {
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8",
			[]byte(`<html><body><h2>Pago rechazado</h2><p>No fue posible confirmar la transacción.</p></body></html>`))
		return
	}
	if !result.Approved {
		c.Data(http.StatusOK, "text/html; charset=utf-8",
			[]byte(`<html><body><h2>Pago rechazado</h2><p>La transacción fue rechazada o anulada.</p></body></html>`))
		return
	}

	buyOrder := ""
	amount := 0.0
	authCode := "---"
	if result.Payment != nil {
		buyOrder = result.Payment.BuyOrder
		amount = result.Payment.Amount
		if result.Payment.AuthorizationCode != nil && *result.Payment.AuthorizationCode != "" {
			authCode = *result.Payment.AuthorizationCode
		}
	}

	receipt := fmt.Sprintf(`<html>
  <head>
    <meta charset="utf-8"/>
    <title>Pago Confirmado</title>
    <style>
      body { font-family: sans-serif; text-align: center; margin-top: 40px; }
      .card { border: 1px solid #ddd; padding: 20px; border-radius: 10px; width: 80%%; margin: auto; }
      h2 { color: #0c7d4f; }
      .code { background: #f2f2f2; padding: 5px 10px; border-radius: 5px; display: inline-block; }
    </style>
  </head>
  <body>
    <div class="card">
      <h2>Pago Exitoso</h2>
      <p>Orden: <b>%s</b></p>
      <p>Monto pagado: <b>$%.0f</b></p>
      <p>Fecha: <b>%s</b></p>
      <p>Código de autorización: <span class="code">%s</span></p>
      <p>Transacción confirmada correctamente</p>
    </div>
  </body>
</html>`, buyOrder, amount, time.Now().Format("02-01-2006 15:04"), authCode)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(receipt))
}

func (h *SubscriptionHandler) Active(c *gin.Context) {
	userID, ok := h.IDParam(c, "userId")
	if !ok {
		return
	}

	sub, err := h.payments.ActiveSubscription(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if sub == nil {
		h.OK(c, gin.H{"active": false})
		return
	}
	h.OK(c, gin.H{"active": true, "subscription": sub})
}
