package services

import (
	"errors"
	"testing"

	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/domain"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/repos"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func seedProduct(t *testing.T, db *sqlx.DB, id string, price float64, stock int) {
	t.Helper()
	err := repos.NewProductRepo(db).Save(domain.Product{
		ID: id, CategoryID: "c1", Title: "Product " + id,
		Price: price, ImagesJSON: `["/placeholder-product.png"]`, Stock: stock,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestPlaceCashOnDelivery(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p1", 100, 5)
	seedProduct(t, db, "p2", 25.5, 5)

	carts := repos.NewCartRepo(db)
	prods := repos.NewProductRepo(db)
	cart := NewCartService(carts, prods)
	orders := NewOrderService(carts, prods, repos.NewOrderRepo(db))

	sid := "sess-1"
	if err := cart.Add(sid, "p1", 2); err != nil {
		t.Fatal(err)
	}
	if err := cart.Add(sid, "p2", 1); err != nil {
		t.Fatal(err)
	}

	contact := Contact{Name: "Ann", Email: "ann@example.com", Phone: "+380501112233", Address: "Main st 1"}
	orderID, total, err := orders.Place(sid, domain.PayCOD, contact)
	if err != nil {
		t.Fatal(err)
	}
	if total != 225.5 {
		t.Fatalf("want total 225.5, got %v", total)
	}

	row, items, err := repos.NewOrderRepo(db).Get(orderID)
	if err != nil {
		t.Fatal(err)
	}
	if row.Status != domain.OrderPlaced || row.PaymentMethod != domain.PayCOD {
		t.Fatalf("bad order row: %+v", row)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 line items, got %d", len(items))
	}

	p1, err := prods.Get("p1")
	if err != nil {
		t.Fatal(err)
	}
	if p1.Stock != 3 {
		t.Fatalf("stock not decremented: %d", p1.Stock)
	}

	// cart is emptied after a successful order
	view, err := cart.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("cart should be empty, got %d items", len(view.Items))
	}
}

func TestPlaceRejectsEmptyCart(t *testing.T) {
	db := memdb(t)
	carts := repos.NewCartRepo(db)
	prods := repos.NewProductRepo(db)
	orders := NewOrderService(carts, prods, repos.NewOrderRepo(db))

	if _, _, err := orders.Place("sess-empty", domain.PayCOD, Contact{Name: "A"}); err == nil {
		t.Fatal("empty cart must not place an order")
	}
}

func TestPlaceRejectsUnknownMethod(t *testing.T) {
	db := memdb(t)
	carts := repos.NewCartRepo(db)
	prods := repos.NewProductRepo(db)
	orders := NewOrderService(carts, prods, repos.NewOrderRepo(db))

	if _, _, err := orders.Place("sess-1", "crypto", Contact{}); err == nil {
		t.Fatal("unknown payment method must be rejected")
	}
}

func TestPlaceInsufficientStock(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p1", 10, 1)

	carts := repos.NewCartRepo(db)
	prods := repos.NewProductRepo(db)
	cart := NewCartService(carts, prods)
	orders := NewOrderService(carts, prods, repos.NewOrderRepo(db))

	sid := "sess-1"
	if err := cart.Add(sid, "p1", 3); err != nil {
		t.Fatal(err)
	}
	if _, _, err := orders.Place(sid, domain.PayCOD, Contact{Name: "A"}); err == nil {
		t.Fatal("order above stock must fail")
	}

	p, err := prods.Get("p1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Stock != 1 {
		t.Fatalf("stock must be untouched after rejection, got %d", p.Stock)
	}
}

func TestCardOrderMarkPaid(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p1", 40, 5)

	carts := repos.NewCartRepo(db)
	prods := repos.NewProductRepo(db)
	cart := NewCartService(carts, prods)
	orderRepo := repos.NewOrderRepo(db)
	orders := NewOrderService(carts, prods, orderRepo)

	sid := "sess-card"
	if err := cart.Add(sid, "p1", 1); err != nil {
		t.Fatal(err)
	}
	orderID, _, err := orders.Place(sid, domain.PayCard, Contact{Name: "B", Email: "b@example.com"})
	if err != nil {
		t.Fatal(err)
	}

	row, _, err := orderRepo.Get(orderID)
	if err != nil {
		t.Fatal(err)
	}
	if row.Status != domain.OrderPlaced {
		t.Fatalf("card order must stay PLACED until callback, got %s", row.Status)
	}

	if err := orders.MarkPaid(orderID); err != nil {
		t.Fatal(err)
	}
	row, _, err = orderRepo.Get(orderID)
	if err != nil {
		t.Fatal(err)
	}
	if row.Status != domain.OrderPaid {
		t.Fatalf("want PAID after callback, got %s", row.Status)
	}
}

func TestMarkPaidGuards(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p1", 40, 5)

	carts := repos.NewCartRepo(db)
	prods := repos.NewProductRepo(db)
	cart := NewCartService(carts, prods)
	orderRepo := repos.NewOrderRepo(db)
	orders := NewOrderService(carts, prods, orderRepo)

	if err := cart.Add("sess-cod", "p1", 1); err != nil {
		t.Fatal(err)
	}
	codID, _, err := orders.Place("sess-cod", domain.PayCOD, Contact{Name: "A", Email: "a@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if err := orders.MarkPaid(codID); err == nil {
		t.Fatal("COD order must never be marked paid by a callback")
	}
	row, _, err := orderRepo.Get(codID)
	if err != nil {
		t.Fatal(err)
	}
	if row.Status != domain.OrderPlaced {
		t.Fatalf("COD order must stay PLACED, got %s", row.Status)
	}

	if err := cart.Add("sess-card", "p1", 1); err != nil {
		t.Fatal(err)
	}
	cardID, _, err := orders.Place("sess-card", domain.PayCard, Contact{Name: "B", Email: "b@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if err := orders.MarkPaid(cardID); err != nil {
		t.Fatal(err)
	}
	if err := orders.MarkPaid(cardID); err == nil {
		t.Fatal("a settled order must not be marked paid twice")
	}

	if err := orders.MarkPaid("no-such-order"); err == nil {
		t.Fatal("unknown order must be refused")
	}
}

func TestDecrementBelowZero(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p1", 10, 2)
	prods := repos.NewProductRepo(db)

	if err := prods.Decrement("p1", 3); !errors.Is(err, repos.ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}
	if err := prods.Decrement("p1", 2); err != nil {
		t.Fatal(err)
	}
}
