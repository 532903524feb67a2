package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"carers-store/models"
	"carers-store/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductFinder resolves catalog entries for cart mutations.
type ProductFinder interface {
	GetProductByID(id int) (*models.Product, error)
}

type CartController struct {
	cartService    *services.CartService
	productService ProductFinder
}

func NewCartController(cartService *services.CartService, productService ProductFinder) *CartController {
	return &CartController{
		cartService:    cartService,
		productService: productService,
	}
}

// resolveOwner returns the cart owner key for this request. Authenticated
// users get a stable key derived from their user ID; guests are tracked by an
// X-Cart-Session token, minted here and echoed back so the client can persist
// it.
func (ctrl *CartController) resolveOwner(c *gin.Context) string {
	if userID, exists := c.Get("user_id"); exists {
		return fmt.Sprintf("user:%d", userID.(int))
	}

	session := c.GetHeader("X-Cart-Session")
	if session == "" {
		session = uuid.NewString()
	}
	c.Header("X-Cart-Session", session)
	return "session:" + session
}

// @Summary Get cart
// @Description Get the current cart with computed totals
// @Tags Cart
// @Produce json
// @Param X-Cart-Session header string false "Guest cart session token"
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	ownerID := ctrl.resolveOwner(c)
	view := ctrl.cartService.Get(c.Request.Context(), ownerID)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart retrieved",
		Data:    view,
	})
}

// @Summary Add item to cart
// @Description Add a product to the cart, merging with an existing line
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.AddItemRequest true "Item to add"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	product, err := ctrl.productService.GetProductByID(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Product not found",
		})
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	ownerID := ctrl.resolveOwner(c)
	view, err := ctrl.cartService.AddItem(c.Request.Context(), ownerID, *product, quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to save cart",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item added to cart",
		Data:    view,
	})
}

// @Summary Remove item from cart
// @Tags Cart
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{productId} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid product ID",
		})
		return
	}

	ownerID := ctrl.resolveOwner(c)
	view, err := ctrl.cartService.RemoveItem(c.Request.Context(), ownerID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to save cart",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item removed from cart",
		Data:    view,
	})
}

// @Summary Set item quantity
// @Description Set a line's quantity. A quantity below 1 removes the line.
// @Tags Cart
// @Accept json
// @Produce json
// @Param productId path int true "Product ID"
// @Param request body models.UpdateQuantityRequest true "New quantity"
// @Success 200 {object} models.Response
// @Router /cart/items/{productId} [patch]
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid product ID",
		})
		return
	}

	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	ownerID := ctrl.resolveOwner(c)
	view, err := ctrl.cartService.UpdateQuantity(c.Request.Context(), ownerID, productID, req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to save cart",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart updated",
		Data:    view,
	})
}

// @Summary Increase item quantity
// @Tags Cart
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{productId}/increase [post]
func (ctrl *CartController) IncreaseQuantity(c *gin.Context) {
	ctrl.step(c, ctrl.cartService.IncreaseQuantity)
}

// @Summary Decrease item quantity
// @Description Decrease a line's quantity. Dropping below 1 removes the line.
// @Tags Cart
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{productId}/decrease [post]
func (ctrl *CartController) DecreaseQuantity(c *gin.Context) {
	ctrl.step(c, ctrl.cartService.DecreaseQuantity)
}

func (ctrl *CartController) step(c *gin.Context, fn func(ctx context.Context, ownerID string, productID int) (models.CartView, error)) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid product ID",
		})
		return
	}

	ownerID := ctrl.resolveOwner(c)
	view, err := fn(c.Request.Context(), ownerID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to save cart",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart updated",
		Data:    view,
	})
}

// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	ownerID := ctrl.resolveOwner(c)
	view, err := ctrl.cartService.Clear(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to save cart",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart cleared",
		Data:    view,
	})
}
