package domain

type Category struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Slug      string `db:"slug"`
	ParentID  string `db:"parent_id"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

type SubCategory struct {
	ID         string `db:"id"`
	CategoryID string `db:"category_id"`
	Name       string `db:"name"`
	CreatedAt  string `db:"created_at"`
}

type Product struct {
	ID            string  `db:"id"`
	CategoryID    string  `db:"category_id"`
	SubCategoryID string  `db:"subcategory_id"`
	Title         string  `db:"title"`
	Description   string  `db:"description"`
	Price         float64 `db:"price"`
	ImagesJSON    string  `db:"images_json"`
	Stock         int     `db:"stock"`
	Featured      bool    `db:"featured"`
	Hidden        bool    `db:"hidden"`
	CreatedAt     string  `db:"created_at"`
	UpdatedAt     string  `db:"updated_at"`
}

// Video is a promo video asset managed from the admin back-office.
type Video struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	URL       string `db:"url"`
	CreatedAt string `db:"created_at"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}

// Order statuses form a simple linear flow with a cancel branch.
const (
	OrderPlaced    = "PLACED"
	OrderPaid      = "PAID"
	OrderShipped   = "SHIPPED"
	OrderCompleted = "COMPLETED"
	OrderCanceled  = "CANCELED"
)

// Payment methods accepted at checkout.
const (
	PayCOD  = "cod"
	PayCard = "card"
)
