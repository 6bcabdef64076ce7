package repos

import (
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SubCategoryRepo struct{ db *sqlx.DB }

func NewSubCategoryRepo(db *sqlx.DB) *SubCategoryRepo { return &SubCategoryRepo{db: db} }

func (r *SubCategoryRepo) Save(s domain.SubCategory) error {
	_, err := r.db.Exec(`
	  INSERT INTO subcategories(id, category_id, name, created_at)
	  VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET
	    category_id = excluded.category_id,
	    name = excluded.name
	`, s.ID, s.CategoryID, s.Name)
	return err
}

func (r *SubCategoryRepo) ListByCategory(catID string) ([]domain.SubCategory, error) {
	var out []domain.SubCategory
	err := r.db.Select(&out, `
	  SELECT id, category_id, name, created_at
	  FROM subcategories WHERE category_id = ? ORDER BY name
	`, catID)
	return out, err
}

func (r *SubCategoryRepo) List() ([]domain.SubCategory, error) {
	var out []domain.SubCategory
	err := r.db.Select(&out, `
	  SELECT id, category_id, name, created_at FROM subcategories ORDER BY name
	`)
	return out, err
}

func (r *SubCategoryRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM subcategories WHERE id = ?`, id)
	return err
}
