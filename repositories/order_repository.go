package repositories

import (
	"context"
	"time"

	"carers-store/config"
	"carers-store/models"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// CreateOrder writes the order and its items in one transaction.
func (r *OrderRepository) CreateOrder(order *models.Order) error {
	ctx := context.Background()

	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (order_number, user_id, customer_email, subtotal, discount, shipping, total, currency, status, payment_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		order.OrderNumber, order.UserID, order.CustomerEmail, order.Subtotal, order.Discount,
		order.Shipping, order.Total, order.Currency, order.Status, order.PaymentID, now, now,
	).Scan(&order.ID)
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, name, unit_price, quantity)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			order.ID, item.ProductID, item.Name, item.UnitPrice, item.Quantity,
		).Scan(&item.ID)
		if err != nil {
			return err
		}
		item.OrderID = order.ID
	}

	order.CreatedAt = now
	order.UpdatedAt = now
	return tx.Commit(ctx)
}

func (r *OrderRepository) GetOrdersByUser(userID string, page, limit int) ([]models.Order, int, error) {
	offset := (page - 1) * limit

	var total int
	config.DB.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total)

	rows, err := config.DB.Query(context.Background(),
		`SELECT id, order_number, user_id, customer_email, subtotal, discount, shipping, total, currency, status, COALESCE(payment_id, ''), created_at, updated_at
		 FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			continue
		}
		orders = append(orders, o)
	}
	return orders, total, nil
}

func (r *OrderRepository) GetAllOrders(page, limit int, status string) ([]models.Order, int, error) {
	offset := (page - 1) * limit

	where := ""
	countArgs := []interface{}{}
	listArgs := []interface{}{}
	if status != "" && status != "All" {
		where = " WHERE status = $1"
		countArgs = append(countArgs, status)
		listArgs = append(listArgs, status)
	}

	var total int
	config.DB.QueryRow(context.Background(), "SELECT COUNT(*) FROM orders"+where, countArgs...).Scan(&total)

	query := `SELECT id, order_number, user_id, customer_email, subtotal, discount, shipping, total, currency, status, COALESCE(payment_id, ''), created_at, updated_at
	          FROM orders` + where + ` ORDER BY created_at DESC`
	if where == "" {
		query += " LIMIT $1 OFFSET $2"
	} else {
		query += " LIMIT $2 OFFSET $3"
	}
	listArgs = append(listArgs, limit, offset)

	rows, err := config.DB.Query(context.Background(), query, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			continue
		}
		orders = append(orders, o)
	}
	return orders, total, nil
}

func (r *OrderRepository) GetOrderByID(id int) (*models.Order, error) {
	var o models.Order
	err := scanOrder(config.DB.QueryRow(context.Background(),
		`SELECT id, order_number, user_id, customer_email, subtotal, discount, shipping, total, currency, status, COALESCE(payment_id, ''), created_at, updated_at
		 FROM orders WHERE id = $1`, id), &o)
	if err != nil {
		return nil, err
	}

	rows, err := config.DB.Query(context.Background(),
		`SELECT id, order_id, product_id, name, unit_price, quantity FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			continue
		}
		o.Items = append(o.Items, item)
	}
	return &o, nil
}

func (r *OrderRepository) UpdateStatus(id int, status string) error {
	_, err := config.DB.Exec(context.Background(),
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	return err
}

func scanOrder(row interface {
	Scan(dest ...interface{}) error
}, o *models.Order) error {
	return row.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.CustomerEmail, &o.Subtotal, &o.Discount,
		&o.Shipping, &o.Total, &o.Currency, &o.Status, &o.PaymentID, &o.CreatedAt, &o.UpdatedAt)
}
