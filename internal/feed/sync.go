package feed

import (
	"encoding/json"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/domain"
)

const (
	// InStockQty is written when the feed flags an offer as available; the
	// feed carries only a boolean, never a real quantity.
	InStockQty = 99

	// PlaceholderImage backs offers that ship without a picture.
	PlaceholderImage = "/placeholder-product.png"

	// placeholderName backs categories that ship without a display name.
	placeholderName = "Category"
)

// CategoryStore is the slice of persistence the category pass needs.
type CategoryStore interface {
	Upsert(c domain.Category) error
	Exists(id string) (bool, error)
}

// ProductStore is the slice of persistence the product pass needs.
type ProductStore interface {
	Upsert(p domain.Product) error
}

// Report is the structured result of one sync run. Counts reflect records
// seen, not records changed: an upsert counts whether it created or updated.
type Report struct {
	Success    bool   `json:"success"`
	Categories int    `json:"categories"`
	Products   int    `json:"products"`
	Error      string `json:"error,omitempty"`
	ErrorKind  string `json:"errorKind,omitempty"`
}

// Synchronizer pulls the CRM feed and reconciles it against the local
// Category and Product tables. It never touches subcategories, carts or
// orders, and it never deletes rows absent from a pull.
type Synchronizer struct {
	Client *Client
	Cats   CategoryStore
	Prods  ProductStore
}

func NewSynchronizer(client *Client, cats CategoryStore, prods ProductStore) *Synchronizer {
	return &Synchronizer{Client: client, Cats: cats, Prods: prods}
}

// Run executes one synchronization pass. Every failure is caught here and
// converted into a failure report; nothing escapes to the caller. There is
// no enclosing transaction: a failure partway through leaves earlier upserts
// committed.
func (s *Synchronizer) Run() Report {
	data, err := s.Client.Fetch()
	if err != nil {
		return failure(err, 0, 0)
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return failure(err, 0, 0)
	}

	cats := sortParentsFirst(catalog.CategoryItems())
	seen := make(map[string]bool, len(cats))

	catCount := 0
	for _, c := range cats {
		if err := s.Cats.Upsert(toCategory(c)); err != nil {
			return failure(err, catCount, 0)
		}
		seen[c.ID] = true
		catCount++
	}

	prodCount := 0
	for _, o := range catalog.OfferItems() {
		p := toProduct(o)
		if p.CategoryID != "" && !seen[p.CategoryID] {
			// Write-and-warn on a dangling category reference: the category
			// may exist locally from an earlier run, and the feed is an
			// upsert source rather than the authoritative set.
			if ok, err := s.Cats.Exists(p.CategoryID); err == nil && !ok {
				log.Printf("[feed] offer %s references unknown category %s", p.ID, p.CategoryID)
			}
		}
		if err := s.Prods.Upsert(p); err != nil {
			return failure(err, catCount, prodCount)
		}
		prodCount++
	}

	return Report{Success: true, Categories: catCount, Products: prodCount}
}

// sortParentsFirst stable-sorts categories so every category without a
// declared parent lands before those that declare one; ties keep feed order.
func sortParentsFirst(in []Category) []Category {
	out := make([]Category, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ParentID == "" && out[j].ParentID != ""
	})
	return out
}

func toCategory(c Category) domain.Category {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = placeholderName
	}
	return domain.Category{
		ID:       c.ID,
		Name:     name,
		Slug:     Slugify(name, c.ID),
		ParentID: c.ParentID,
	}
}

func toProduct(o Offer) domain.Product {
	price, err := strconv.ParseFloat(strings.TrimSpace(o.Price), 64)
	if err != nil || price < 0 {
		price = 0
	}

	images := make([]string, 0, len(o.Pictures))
	for _, pic := range o.Pictures {
		if pic = strings.TrimSpace(pic); pic != "" {
			images = append(images, pic)
		}
	}
	if len(images) == 0 {
		images = []string{PlaceholderImage}
	}
	imagesJSON, _ := json.Marshal(images)

	stock := 0
	if o.IsAvailable() {
		stock = InStockQty
	}

	return domain.Product{
		ID:          o.ID,
		CategoryID:  o.CategoryID,
		Title:       o.Name,
		Description: o.Description,
		Price:       price,
		ImagesJSON:  string(imagesJSON),
		Stock:       stock,
	}
}

func failure(err error, cats, prods int) Report {
	return Report{
		Categories: cats,
		Products:   prods,
		Error:      err.Error(),
		ErrorKind:  string(KindOf(err)),
	}
}
