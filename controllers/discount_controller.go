package controllers

import (
	"net/http"
	"strconv"

	"carers-store/models"
	"carers-store/repositories"

	"github.com/gin-gonic/gin"
)

type DiscountController struct {
	discountRepo *repositories.DiscountRepository
}

func NewDiscountController(discountRepo *repositories.DiscountRepository) *DiscountController {
	return &DiscountController{discountRepo: discountRepo}
}

// @Summary List active discount rules
// @Tags Discounts
// @Produce json
// @Success 200 {object} models.Response
// @Router /discounts [get]
func (ctrl *DiscountController) GetActiveRules(c *gin.Context) {
	rules, err := ctrl.discountRepo.ActiveRules()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to retrieve discount rules",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Discount rules retrieved",
		Data:    rules,
	})
}

// @Summary Create discount rule
// @Tags Discounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateDiscountRuleRequest true "Rule definition"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/discounts [post]
func (ctrl *DiscountController) CreateRule(c *gin.Context) {
	var req models.CreateDiscountRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	if req.DiscountAmount.IsNegative() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Discount amount cannot be negative",
		})
		return
	}

	rule := &models.DiscountRule{
		ProductID:         req.ProductID,
		ThresholdQuantity: req.ThresholdQuantity,
		DiscountAmount:    req.DiscountAmount,
		Title:             req.Title,
		Description:       req.Description,
		IsActive:          true,
	}

	if err := ctrl.discountRepo.Create(rule); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to create discount rule",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Discount rule created",
		Data:    rule,
	})
}

// @Summary Deactivate discount rule
// @Tags Discounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rule ID"
// @Success 200 {object} models.Response
// @Router /admin/discounts/{id} [delete]
func (ctrl *DiscountController) DeactivateRule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid rule ID",
		})
		return
	}

	if err := ctrl.discountRepo.Deactivate(id); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to deactivate discount rule",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Discount rule deactivated",
	})
}
