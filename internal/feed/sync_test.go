package feed_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/domain"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/feed"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/repos"
)

func storeDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return db
}

// feedServer serves whatever document the current body function returns.
func feedServer(t *testing.T, body func() (int, string)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code, doc := body()
		w.WriteHeader(code)
		_, _ = w.Write([]byte(doc))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newSync(url string, db *sqlx.DB) *feed.Synchronizer {
	client := feed.NewClient(url)
	client.Retries = 1
	client.Backoff = time.Millisecond
	return feed.NewSynchronizer(client, repos.NewCategoryRepo(db), repos.NewProductRepo(db))
}

const fullFeed = `<yml_catalog><shop>
  <categories>
    <category id="1">Style</category>
    <category id="2" parentId="1">Boots</category>
  </categories>
  <offers>
    <offer id="10" available="true">
      <name>Leather Boot</name>
      <description>Classic</description>
      <price>129.99</price>
      <picture>http://cdn.example.com/10.jpg</picture>
      <categoryId>2</categoryId>
    </offer>
    <offer id="11" available="false">
      <name>Summer Sandal</name>
      <price>49.50</price>
      <categoryId>1</categoryId>
    </offer>
  </offers>
</shop></yml_catalog>`

func TestRunCreatesCategoriesAndProducts(t *testing.T) {
	db := storeDB(t)
	srv := feedServer(t, func() (int, string) { return 200, fullFeed })

	rep := newSync(srv.URL, db).Run()
	if !rep.Success {
		t.Fatalf("sync failed: %s", rep.Error)
	}
	if rep.Categories != 2 || rep.Products != 2 {
		t.Fatalf("want 2/2 processed, got %d/%d", rep.Categories, rep.Products)
	}

	catRepo := repos.NewCategoryRepo(db)
	c1, err := catRepo.Get("1")
	if err != nil {
		t.Fatal(err)
	}
	if c1.Name != "Style" || c1.Slug != "style-1" {
		t.Fatalf("bad category 1: %+v", c1)
	}
	c2, err := catRepo.Get("2")
	if err != nil {
		t.Fatal(err)
	}
	if c2.Name != "Boots" || c2.ParentID != "1" || !strings.HasSuffix(c2.Slug, "-2") {
		t.Fatalf("bad category 2: %+v", c2)
	}

	prodRepo := repos.NewProductRepo(db)
	p, err := prodRepo.Get("10")
	if err != nil {
		t.Fatal(err)
	}
	if p.Title != "Leather Boot" || p.CategoryID != "2" || p.Price != 129.99 {
		t.Fatalf("bad product 10: %+v", p)
	}
	if p.Stock != feed.InStockQty {
		t.Fatalf("available offer: want stock %d, got %d", feed.InStockQty, p.Stock)
	}
	if p.ImagesJSON != `["http://cdn.example.com/10.jpg"]` {
		t.Fatalf("bad images: %s", p.ImagesJSON)
	}

	p11, err := prodRepo.Get("11")
	if err != nil {
		t.Fatal(err)
	}
	if p11.Stock != 0 {
		t.Fatalf("unavailable offer: want stock 0, got %d", p11.Stock)
	}
	if p11.ImagesJSON != `["`+feed.PlaceholderImage+`"]` {
		t.Fatalf("want placeholder image, got %s", p11.ImagesJSON)
	}
	if p11.Description != "" {
		t.Fatalf("missing description should default empty, got %q", p11.Description)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	db := storeDB(t)
	srv := feedServer(t, func() (int, string) { return 200, fullFeed })
	s := newSync(srv.URL, db)

	first := s.Run()
	if !first.Success {
		t.Fatalf("first run failed: %s", first.Error)
	}
	second := s.Run()
	if !second.Success {
		t.Fatalf("second run failed: %s", second.Error)
	}
	if first.Categories != second.Categories || first.Products != second.Products {
		t.Fatalf("counts drifted: %+v vs %+v", first, second)
	}

	var nCats, nProds int
	if err := db.Get(&nCats, `SELECT COUNT(*) FROM categories`); err != nil {
		t.Fatal(err)
	}
	if err := db.Get(&nProds, `SELECT COUNT(*) FROM products`); err != nil {
		t.Fatal(err)
	}
	if nCats != 2 || nProds != 2 {
		t.Fatalf("rows duplicated: %d categories, %d products", nCats, nProds)
	}

	c, err := repos.NewCategoryRepo(db).Get("1")
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "Style" || c.Slug != "style-1" {
		t.Fatalf("second run mutated category: %+v", c)
	}
}

// The synchronizer must reorder internally: a child listed before its parent
// in the raw feed must not depend on feed order.
func TestRunReordersParentsFirst(t *testing.T) {
	db := storeDB(t)
	doc := `<yml_catalog><shop>
	  <categories>
	    <category id="2" parentId="1">Boots</category>
	    <category id="1">Style</category>
	  </categories>
	  <offers></offers>
	</shop></yml_catalog>`
	srv := feedServer(t, func() (int, string) { return 200, doc })

	rep := newSync(srv.URL, db).Run()
	if !rep.Success || rep.Categories != 2 {
		t.Fatalf("bad report: %+v", rep)
	}
	catRepo := repos.NewCategoryRepo(db)
	for _, id := range []string{"1", "2"} {
		if _, err := catRepo.Get(id); err != nil {
			t.Fatalf("category %s missing after sync: %v", id, err)
		}
	}
}

func TestRunUpdatesAndPreservesCuratedFields(t *testing.T) {
	db := storeDB(t)
	doc := fullFeed
	srv := feedServer(t, func() (int, string) { return 200, doc })
	s := newSync(srv.URL, db)

	if rep := s.Run(); !rep.Success {
		t.Fatalf("first run failed: %s", rep.Error)
	}

	// Admin curates the product between runs.
	if _, err := db.Exec(`UPDATE products SET subcategory_id='sub-7', featured=1, hidden=1 WHERE id='10'`); err != nil {
		t.Fatal(err)
	}

	doc = strings.Replace(fullFeed, "<price>129.99</price>", "<price>99.99</price>", 1)
	if rep := s.Run(); !rep.Success {
		t.Fatalf("second run failed: %s", rep.Error)
	}

	p, err := repos.NewProductRepo(db).Get("10")
	if err != nil {
		t.Fatal(err)
	}
	if p.Price != 99.99 {
		t.Fatalf("feed-owned price not updated: %v", p.Price)
	}
	if p.SubCategoryID != "sub-7" || !p.Featured || !p.Hidden {
		t.Fatalf("curated fields lost on sync: %+v", p)
	}
}

func TestRunTransportFailure(t *testing.T) {
	db := storeDB(t)
	srv := feedServer(t, func() (int, string) { return 503, "down" })

	rep := newSync(srv.URL, db).Run()
	if rep.Success {
		t.Fatal("expected failure")
	}
	if rep.ErrorKind != string(feed.KindTransport) {
		t.Fatalf("want transport kind, got %s (%s)", rep.ErrorKind, rep.Error)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("no writes expected after transport failure, got %d rows", n)
	}
}

func TestRunStructureFailure(t *testing.T) {
	db := storeDB(t)
	srv := feedServer(t, func() (int, string) { return 200, `<rss><channel/></rss>` })

	rep := newSync(srv.URL, db).Run()
	if rep.Success {
		t.Fatal("expected failure")
	}
	if rep.ErrorKind != string(feed.KindStructure) {
		t.Fatalf("want structure kind, got %s (%s)", rep.ErrorKind, rep.Error)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("no writes expected after structure failure, got %d rows", n)
	}
}

// failAfter wraps a real product store and fails the (n+1)th upsert.
type failAfter struct {
	inner feed.ProductStore
	n     int
	seen  int
}

func (f *failAfter) Upsert(p domain.Product) error {
	f.seen++
	if f.seen > f.n {
		return fmt.Errorf("simulated write failure for %s", p.ID)
	}
	return f.inner.Upsert(p)
}

// A failure on the Nth product leaves all categories and the first N-1
// products committed: at-least-once, not atomic.
func TestRunPartialFailureIsNonAtomic(t *testing.T) {
	db := storeDB(t)
	srv := feedServer(t, func() (int, string) { return 200, fullFeed })

	client := feed.NewClient(srv.URL)
	client.Retries = 1
	client.Backoff = time.Millisecond
	prods := &failAfter{inner: repos.NewProductRepo(db), n: 1}
	s := feed.NewSynchronizer(client, repos.NewCategoryRepo(db), prods)

	rep := s.Run()
	if rep.Success {
		t.Fatal("expected failure")
	}
	if rep.ErrorKind != string(feed.KindStorage) {
		t.Fatalf("want storage kind, got %s", rep.ErrorKind)
	}
	if rep.Categories != 2 || rep.Products != 1 {
		t.Fatalf("want counts 2/1 before failure, got %d/%d", rep.Categories, rep.Products)
	}

	var nCats, nProds int
	if err := db.Get(&nCats, `SELECT COUNT(*) FROM categories`); err != nil {
		t.Fatal(err)
	}
	if err := db.Get(&nProds, `SELECT COUNT(*) FROM products`); err != nil {
		t.Fatal(err)
	}
	if nCats != 2 || nProds != 1 {
		t.Fatalf("earlier writes must stay committed: %d categories, %d products", nCats, nProds)
	}
}

// A product referencing a category absent from the feed is still written.
func TestRunDanglingCategoryReferenceIsWritten(t *testing.T) {
	db := storeDB(t)
	doc := `<yml_catalog><shop>
	  <categories><category id="1">Style</category></categories>
	  <offers>
	    <offer id="10" available="true"><name>Orphan</name><price>5</price><categoryId>404</categoryId></offer>
	  </offers>
	</shop></yml_catalog>`
	srv := feedServer(t, func() (int, string) { return 200, doc })

	rep := newSync(srv.URL, db).Run()
	if !rep.Success {
		t.Fatalf("sync failed: %s", rep.Error)
	}
	p, err := repos.NewProductRepo(db).Get("10")
	if err != nil {
		t.Fatal(err)
	}
	if p.CategoryID != "404" {
		t.Fatalf("dangling reference should be written verbatim, got %q", p.CategoryID)
	}
}

// Malformed price falls back to 0 rather than failing the record.
func TestRunBadPriceDefaultsToZero(t *testing.T) {
	db := storeDB(t)
	doc := `<yml_catalog><shop>
	  <categories><category id="1">Style</category></categories>
	  <offers>
	    <offer id="10"><name>Odd</name><price>not-a-number</price><categoryId>1</categoryId></offer>
	  </offers>
	</shop></yml_catalog>`
	srv := feedServer(t, func() (int, string) { return 200, doc })

	rep := newSync(srv.URL, db).Run()
	if !rep.Success {
		t.Fatalf("sync failed: %s", rep.Error)
	}
	p, err := repos.NewProductRepo(db).Get("10")
	if err != nil {
		t.Fatal(err)
	}
	if p.Price != 0 {
		t.Fatalf("want price 0, got %v", p.Price)
	}
}

func TestRunUnnamedCategoryGetsPlaceholderName(t *testing.T) {
	db := storeDB(t)
	doc := `<yml_catalog><shop>
	  <categories><category id="9"></category></categories>
	  <offers></offers>
	</shop></yml_catalog>`
	srv := feedServer(t, func() (int, string) { return 200, doc })

	rep := newSync(srv.URL, db).Run()
	if !rep.Success {
		t.Fatalf("sync failed: %s", rep.Error)
	}
	c, err := repos.NewCategoryRepo(db).Get("9")
	if err != nil {
		t.Fatal(err)
	}
	if c.Name == "" {
		t.Fatal("unnamed category should get a placeholder name")
	}
	if !strings.HasSuffix(c.Slug, "-9") {
		t.Fatalf("slug should keep the id suffix, got %q", c.Slug)
	}
}

func TestClientRetriesThenSucceeds(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(500)
			return
		}
		_, _ = w.Write([]byte(fullFeed))
	}))
	defer srv.Close()

	client := feed.NewClient(srv.URL)
	client.Retries = 3
	client.Backoff = time.Millisecond
	body, err := client.Fetch()
	if err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if calls != 3 {
		t.Fatalf("want 3 attempts, got %d", calls)
	}
	if !strings.Contains(string(body), "<shop>") {
		t.Fatal("unexpected body")
	}
}
