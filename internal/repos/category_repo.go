package repos

import (
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// Upsert creates or updates a category keyed by its feed id. An existing row
// is updated, never duplicated.
func (r *CategoryRepo) Upsert(c domain.Category) error {
	_, err := r.db.Exec(`
	  INSERT INTO categories(id, name, slug, parent_id, created_at)
	  VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET
	    name = excluded.name,
	    slug = excluded.slug,
	    parent_id = excluded.parent_id,
	    updated_at = CURRENT_TIMESTAMP
	`, c.ID, c.Name, c.Slug, c.ParentID)
	return err
}

func (r *CategoryRepo) Exists(id string) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM categories WHERE id = ?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, name, slug, parent_id, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories WHERE id = ?
	`, id)
	return c, err
}

func (r *CategoryRepo) GetBySlug(slug string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, name, slug, parent_id, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories WHERE slug = ?
	`, slug)
	return c, err
}

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT id, name, slug, parent_id, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories
	  ORDER BY name
	`)
	return out, err
}

// ListTop returns categories without a parent, for the home page.
func (r *CategoryRepo) ListTop() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT id, name, slug, parent_id, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories
	  WHERE parent_id = ''
	  ORDER BY name
	`)
	return out, err
}

func (r *CategoryRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}
