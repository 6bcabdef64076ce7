package repos

import (
	"testing"

	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/domain"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func TestUpsertPreservesCuratedColumns(t *testing.T) {
	db := testDB(t)
	r := NewProductRepo(db)

	if err := r.Upsert(domain.Product{
		ID: "p1", CategoryID: "c1", Title: "Boot", Description: "v1",
		Price: 100, ImagesJSON: `["a.jpg"]`, Stock: 99,
	}); err != nil {
		t.Fatal(err)
	}

	// admin curation between syncs
	cur, err := r.Get("p1")
	if err != nil {
		t.Fatal(err)
	}
	cur.SubCategoryID = "sub-1"
	cur.Featured = true
	cur.Hidden = true
	if err := r.Save(cur); err != nil {
		t.Fatal(err)
	}

	if err := r.Upsert(domain.Product{
		ID: "p1", CategoryID: "c2", Title: "Boot v2", Description: "v2",
		Price: 80, ImagesJSON: `["b.jpg"]`, Stock: 0,
	}); err != nil {
		t.Fatal(err)
	}

	p, err := r.Get("p1")
	if err != nil {
		t.Fatal(err)
	}
	if p.CategoryID != "c2" || p.Title != "Boot v2" || p.Price != 80 || p.Stock != 0 {
		t.Fatalf("feed-owned columns not updated: %+v", p)
	}
	if p.SubCategoryID != "sub-1" || !p.Featured || !p.Hidden {
		t.Fatalf("curated columns must survive upserts: %+v", p)
	}
}

func TestSearchFilters(t *testing.T) {
	db := testDB(t)
	r := NewProductRepo(db)

	rows := []domain.Product{
		{ID: "p1", CategoryID: "c1", Title: "Winter Boot", Price: 120, ImagesJSON: "[]", Stock: 1},
		{ID: "p2", CategoryID: "c1", Title: "Summer Sandal", Price: 40, ImagesJSON: "[]", Stock: 1},
		{ID: "p3", CategoryID: "c2", Title: "Winter Coat", Price: 200, ImagesJSON: "[]", Stock: 1, Hidden: true},
	}
	for _, p := range rows {
		if err := r.Save(p); err != nil {
			t.Fatal(err)
		}
	}

	got, err := r.Search("winter", "", 0, 0, 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("hidden products must not match, got %+v", got)
	}

	got, err = r.Search("", "c1", 0, 100, 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("category+price filter failed: %+v", got)
	}
}

func TestListByCategorySubFilter(t *testing.T) {
	db := testDB(t)
	r := NewProductRepo(db)

	if err := r.Save(domain.Product{ID: "p1", CategoryID: "c1", SubCategoryID: "s1", Title: "A", Price: 1, ImagesJSON: "[]", Stock: 1}); err != nil {
		t.Fatal(err)
	}
	if err := r.Save(domain.Product{ID: "p2", CategoryID: "c1", SubCategoryID: "s2", Title: "B", Price: 1, ImagesJSON: "[]", Stock: 1}); err != nil {
		t.Fatal(err)
	}

	all, err := r.ListByCategory("c1", "", 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("want 2, got %d", len(all))
	}

	sub, err := r.ListByCategory("c1", "s2", 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sub) != 1 || sub[0].ID != "p2" {
		t.Fatalf("subcategory filter failed: %+v", sub)
	}
}

func TestCategoryUpsertAndTree(t *testing.T) {
	db := testDB(t)
	r := NewCategoryRepo(db)

	for _, c := range []domain.Category{
		{ID: "1", Name: "Style", Slug: "style-1"},
		{ID: "2", Name: "Boots", Slug: "boots-2", ParentID: "1"},
	} {
		if err := r.Upsert(c); err != nil {
			t.Fatal(err)
		}
	}

	ok, err := r.Exists("1")
	if err != nil || !ok {
		t.Fatalf("Exists(1) = %v, %v", ok, err)
	}
	ok, err = r.Exists("404")
	if err != nil || ok {
		t.Fatalf("Exists(404) = %v, %v", ok, err)
	}

	top, err := r.ListTop()
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].ID != "1" {
		t.Fatalf("only parentless categories belong on top level: %+v", top)
	}

	c, err := r.GetBySlug("boots-2")
	if err != nil {
		t.Fatal(err)
	}
	if c.ID != "2" || c.ParentID != "1" {
		t.Fatalf("bad lookup by slug: %+v", c)
	}
}
