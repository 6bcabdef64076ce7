package repos

import (
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/domain"

	"github.com/jmoiron/sqlx"
)

type VideoRepo struct{ db *sqlx.DB }

func NewVideoRepo(db *sqlx.DB) *VideoRepo { return &VideoRepo{db: db} }

func (r *VideoRepo) Save(v domain.Video) error {
	_, err := r.db.Exec(`
	  INSERT INTO videos(id, title, url, created_at)
	  VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET title = excluded.title, url = excluded.url
	`, v.ID, v.Title, v.URL)
	return err
}

func (r *VideoRepo) List() ([]domain.Video, error) {
	var out []domain.Video
	err := r.db.Select(&out, `
	  SELECT id, title, url, created_at FROM videos ORDER BY created_at DESC
	`)
	return out, err
}

func (r *VideoRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM videos WHERE id = ?`, id)
	return err
}
