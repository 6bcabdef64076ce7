package repos

import "github.com/jmoiron/sqlx"

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// ---------- Admin list summary ----------
type OrderSummary struct {
	ID            string  `db:"id"`
	CustomerName  string  `db:"customer_name"`
	CustomerEmail string  `db:"customer_email"`
	PaymentMethod string  `db:"payment_method"`
	Total         float64 `db:"total"`
	Status        string  `db:"status"`
	CreatedAt     string  `db:"created_at"`
}

// ---------- Order detail (used by /order/:id) ----------
type OrderRow struct {
	ID            string  `db:"id"`
	SessionID     string  `db:"session_id"`
	Customer      string  `db:"customer_name"`
	Email         string  `db:"customer_email"`
	Phone         string  `db:"customer_phone"`
	Address       string  `db:"address"`
	PaymentMethod string  `db:"payment_method"`
	Total         float64 `db:"total"`
	Status        string  `db:"status"`
	CreatedAt     string  `db:"created_at"`
}

type OrderItemRow struct {
	Title    string  `db:"title"`
	Qty      int     `db:"qty"`
	Price    float64 `db:"price"`
	Subtotal float64 `db:"subtotal"`
}

// Create inserts a new order header.
func (r *OrderRepo) Create(o OrderRow) error {
	_, err := r.db.Exec(`
	  INSERT INTO orders
	    (id, session_id, customer_name, customer_email, customer_phone, address,
	     payment_method, total, status, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, o.ID, o.SessionID, o.Customer, o.Email, o.Phone, o.Address,
		o.PaymentMethod, o.Total, o.Status)
	return err
}

// InsertItem inserts a single line item with the title and price captured at
// order time, so later catalog syncs cannot rewrite order history.
func (r *OrderRepo) InsertItem(orderID, productID, title string, qty int, price float64) error {
	_, err := r.db.Exec(`
	  INSERT INTO order_items(order_id, product_id, title, qty, price)
	  VALUES(?, ?, ?, ?, ?)
	`, orderID, productID, title, qty, price)
	return err
}

func (r *OrderRepo) Get(orderID string) (OrderRow, []OrderItemRow, error) {
	var o OrderRow
	if err := r.db.Get(&o, `
		SELECT id, session_id, customer_name, customer_email, customer_phone,
		       address, payment_method, total, status, created_at
		FROM orders WHERE id = ?
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	var items []OrderItemRow
	if err := r.db.Select(&items, `
		SELECT title, qty, price, (qty * price) AS subtotal
		FROM order_items
		WHERE order_id = ?
		ORDER BY title
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	return o, items, nil
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, customer_name, customer_email, payment_method, total, status, created_at
		FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}
