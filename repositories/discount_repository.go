package repositories

import (
	"context"
	"time"

	"carers-store/config"
	"carers-store/models"
)

type DiscountRepository struct{}

func NewDiscountRepository() *DiscountRepository {
	return &DiscountRepository{}
}

// ActiveRules returns every rule the pricing engine should apply right now.
func (r *DiscountRepository) ActiveRules() ([]models.DiscountRule, error) {
	query := `SELECT id, product_id, threshold_quantity, discount_amount, title, COALESCE(description, ''), is_active, created_at
	          FROM discount_rules WHERE is_active = true ORDER BY created_at DESC`

	rows, err := config.DB.Query(context.Background(), query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := []models.DiscountRule{}
	for rows.Next() {
		var rule models.DiscountRule
		if err := rows.Scan(&rule.ID, &rule.ProductID, &rule.ThresholdQuantity, &rule.DiscountAmount,
			&rule.Title, &rule.Description, &rule.IsActive, &rule.CreatedAt); err != nil {
			continue
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (r *DiscountRepository) Create(rule *models.DiscountRule) error {
	query := `
		INSERT INTO discount_rules (product_id, threshold_quantity, discount_amount, title, description, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, true, $6)
		RETURNING id, created_at
	`
	return config.DB.QueryRow(context.Background(), query,
		rule.ProductID, rule.ThresholdQuantity, rule.DiscountAmount, rule.Title, rule.Description, time.Now(),
	).Scan(&rule.ID, &rule.CreatedAt)
}

func (r *DiscountRepository) Deactivate(id int) error {
	_, err := config.DB.Exec(context.Background(),
		`UPDATE discount_rules SET is_active = false WHERE id = $1`, id)
	return err
}
