package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"carers-store/config"
	"carers-store/models"
	"carers-store/payments"
	"carers-store/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const signatureTolerance = 5 * time.Minute

type WebhookController struct {
	cartService  *services.CartService
	orderRepo    OrderCreator
	emailService *models.EmailService
}

type OrderCreator interface {
	CreateOrder(order *models.Order) error
}

func NewWebhookController(cartService *services.CartService, orderRepo OrderCreator, emailService *models.EmailService) *WebhookController {
	return &WebhookController{
		cartService:  cartService,
		orderRepo:    orderRepo,
		emailService: emailService,
	}
}

// HandlePaymentWebhook verifies the provider signature and fulfils completed
// checkout sessions: persist the order, clear the cart, send the confirmation
// email. Unknown event types are acknowledged and ignored.
// @Summary Payment provider webhook
// @Tags Webhooks
// @Accept json
// @Produce json
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /webhooks/payment [post]
func (ctrl *WebhookController) HandlePaymentWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Failed to read request body",
		})
		return
	}

	event, err := payments.ParseEvent(payload, c.GetHeader("Payment-Signature"), config.AppConfig.PaymentWebhookSecret, signatureTolerance)
	if err != nil {
		if errors.Is(err, payments.ErrInvalidSignature) || errors.Is(err, payments.ErrSignatureExpired) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Message: "Invalid webhook signature",
			})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Malformed webhook payload",
			Error:   err.Error(),
		})
		return
	}

	switch event.Type {
	case payments.EventCheckoutSessionCompleted:
		session, err := event.CheckoutSession()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Message: "Malformed session object",
				Error:   err.Error(),
			})
			return
		}
		ctrl.fulfillSession(c, session)

	default:
		log.Printf("webhook: ignoring event type %s", event.Type)
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Received"})
}

func (ctrl *WebhookController) fulfillSession(c *gin.Context, session payments.CheckoutSessionCompleted) {
	userID := session.Metadata["userId"]
	ownerID := ownerKeyFor(userID)

	// The order records what the provider charged, not the live cart: the
	// session carries the cart snapshot taken at checkout, and the cart may
	// have been mutated since.
	view, ok := cartSnapshot(session.Metadata)
	if !ok {
		view = ctrl.cartService.Get(c.Request.Context(), ownerID)
	}

	total := view.Summary.Total
	if session.AmountTotal > 0 {
		total = decimal.New(session.AmountTotal, -2)
	}

	order := &models.Order{
		OrderNumber:   fmt.Sprintf("ORD-%d", time.Now().UnixNano()),
		UserID:        userID,
		CustomerEmail: session.CustomerEmail,
		Subtotal:      view.Summary.Subtotal,
		Discount:      view.Summary.Discount,
		Shipping:      view.Summary.Shipping,
		Total:         total,
		Currency:      session.Currency,
		Status:        "paid",
		PaymentID:     session.PaymentIntent,
	}
	for _, li := range view.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: li.ProductID,
			Name:      li.Name,
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
		})
	}

	if err := ctrl.orderRepo.CreateOrder(order); err != nil {
		// Acknowledged anyway: the provider retries on non-2xx, and a
		// duplicate order is worse than a missing one we can backfill.
		log.Printf("webhook: failed to persist order for session %s: %v", session.ID, err)
		return
	}

	if _, err := ctrl.cartService.Clear(c.Request.Context(), ownerID); err != nil {
		log.Printf("webhook: failed to clear cart %s: %v", ownerID, err)
	}

	if ctrl.emailService != nil && session.CustomerEmail != "" {
		go func(email, orderNumber, currency string, order models.Order) {
			if err := ctrl.emailService.SendOrderConfirmationEmail(email, orderNumber, currency, order.Total); err != nil {
				log.Printf("webhook: failed to send confirmation email: %v", err)
			}
		}(session.CustomerEmail, order.OrderNumber, session.Currency, *order)
	}
}

// cartSnapshot decodes the cart view stashed in the session metadata at
// checkout time.
func cartSnapshot(metadata map[string]string) (models.CartView, bool) {
	raw := metadata["cart"]
	if raw == "" {
		return models.CartView{}, false
	}

	var view models.CartView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		log.Printf("webhook: unreadable cart snapshot in metadata: %v", err)
		return models.CartView{}, false
	}
	return view, true
}

// ownerKeyFor maps the checkout metadata back to a cart owner key. Guests
// carry their full owner key in metadata; authenticated users carry their
// numeric ID.
func ownerKeyFor(userID string) string {
	if userID == "" || userID == "guest" {
		return "session:guest"
	}
	if strings.Contains(userID, ":") {
		return userID
	}
	return "user:" + userID
}
