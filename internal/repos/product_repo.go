package repos

import (
	"errors"

	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/domain"

	"github.com/jmoiron/sqlx"
)

var ErrInsufficientStock = errors.New("insufficient stock")

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
    id, category_id, subcategory_id, title, description, price, images_json,
    stock, featured, hidden, created_at, COALESCE(updated_at,'') AS updated_at`

// Upsert creates or updates a product keyed by its feed id. Only feed-owned
// columns are written on conflict: subcategory assignment and the featured/
// hidden flags are admin-curated and must survive every sync run.
func (r *ProductRepo) Upsert(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, category_id, title, description, price, images_json, stock, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET
	    category_id = excluded.category_id,
	    title = excluded.title,
	    description = excluded.description,
	    price = excluded.price,
	    images_json = excluded.images_json,
	    stock = excluded.stock,
	    updated_at = CURRENT_TIMESTAMP
	`, p.ID, p.CategoryID, p.Title, p.Description, p.Price, p.ImagesJSON, p.Stock)
	return err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) ListByCategory(catID, subID string, limit, offset int) ([]domain.Product, error) {
	where := `category_id = ? AND hidden = 0`
	args := []any{catID}
	if subID != "" {
		where += ` AND subcategory_id = ?`
		args = append(args, subID)
	}
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT`+productCols+`
	  FROM products
	  WHERE `+where+`
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`, args...)
	return out, err
}

func (r *ProductRepo) ListFeatured(limit int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT`+productCols+`
	  FROM products
	  WHERE featured = 1 AND hidden = 0
	  ORDER BY created_at DESC
	  LIMIT ?`, limit)
	return out, err
}

func (r *ProductRepo) Search(q, catID string, minPrice, maxPrice float64, limit, offset int) ([]domain.Product, error) {
	where := `hidden = 0`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?)`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	if catID != "" {
		where += ` AND category_id = ?`
		args = append(args, catID)
	}
	if minPrice > 0 {
		where += ` AND price >= ?`
		args = append(args, minPrice)
	}
	if maxPrice > 0 {
		where += ` AND price <= ?`
		args = append(args, maxPrice)
	}
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT`+productCols+`
	  FROM products
	  WHERE `+where+`
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`, args...)
	return out, err
}

// ListAll returns every product, hidden ones included, for the admin pages.
func (r *ProductRepo) ListAll() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT`+productCols+` FROM products ORDER BY title`)
	return out, err
}

// Save writes the full row from an admin form, curated columns included.
func (r *ProductRepo) Save(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, category_id, subcategory_id, title, description,
	                       price, images_json, stock, featured, hidden, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET
	    category_id = excluded.category_id,
	    subcategory_id = excluded.subcategory_id,
	    title = excluded.title,
	    description = excluded.description,
	    price = excluded.price,
	    images_json = excluded.images_json,
	    stock = excluded.stock,
	    featured = excluded.featured,
	    hidden = excluded.hidden,
	    updated_at = CURRENT_TIMESTAMP
	`, p.ID, p.CategoryID, p.SubCategoryID, p.Title, p.Description,
		p.Price, p.ImagesJSON, p.Stock, p.Featured, p.Hidden)
	return err
}

// Decrement atomically subtracts stock if enough remains.
func (r *ProductRepo) Decrement(id string, by int) error {
	res, err := r.db.Exec(`
	  UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?
	`, by, id, by)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}
