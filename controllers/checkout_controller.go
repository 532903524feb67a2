package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"carers-store/models"
	"carers-store/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutController struct {
	cartService     *services.CartService
	productService  *services.ProductService
	checkoutService *services.CheckoutService
}

func NewCheckoutController(cartService *services.CartService, productService *services.ProductService, checkoutService *services.CheckoutService) *CheckoutController {
	return &CheckoutController{
		cartService:     cartService,
		productService:  productService,
		checkoutService: checkoutService,
	}
}

func (ctrl *CheckoutController) resolveOwner(c *gin.Context) (ownerID, userID string) {
	if id, exists := c.Get("user_id"); exists {
		uid := fmt.Sprintf("%d", id.(int))
		return "user:" + uid, uid
	}

	session := c.GetHeader("X-Cart-Session")
	if session == "" {
		session = uuid.NewString()
	}
	c.Header("X-Cart-Session", session)
	return "session:" + session, ""
}

// @Summary Create checkout session
// @Description Build provider line items from the cart and create a hosted checkout session
// @Tags Checkout
// @Produce json
// @Param X-Cart-Session header string false "Guest cart session token"
// @Success 200 {object} models.Response
// @Failure 422 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /checkout/session [post]
func (ctrl *CheckoutController) CreateSession(c *gin.Context) {
	ownerID, userID := ctrl.resolveOwner(c)

	view := ctrl.cartService.Get(c.Request.Context(), ownerID)

	ids := make([]int, 0, len(view.Items))
	for _, li := range view.Items {
		ids = append(ids, li.ProductID)
	}

	catalog, err := ctrl.productService.GetProductsByIDs(ids)
	if err != nil {
		// Checkout can still proceed on inline price data.
		catalog = map[int]models.Product{}
	}

	// The webhook identifies the cart to clear by this value, so guests are
	// tagged with their cart owner key rather than "guest" alone.
	metaUserID := userID
	if metaUserID == "" {
		metaUserID = ownerID
	}

	session, err := ctrl.checkoutService.CreateSession(c.Request.Context(), view, catalog, metaUserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Success: false,
				Message: "Cart is empty",
			})
		case errors.Is(err, services.ErrInvalidLineItem):
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Success: false,
				Message: "Cart contains an item that cannot be checked out",
				Error:   err.Error(),
			})
		default:
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Success: false,
				Message: "Payment provider is unavailable, please try again",
				Error:   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Checkout session created",
		Data: models.CheckoutSessionResponse{
			SessionID: session.ID,
			URL:       session.URL,
		},
	})
}
