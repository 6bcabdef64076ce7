package services

import (
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/domain"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/repos"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Subs  *repos.SubCategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, subs *repos.SubCategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Subs: subs, Prods: prods}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.ListTop()
}

func (s *CatalogService) CategoryBySlug(slug string) (domain.Category, error) {
	return s.Cats.GetBySlug(slug)
}

func (s *CatalogService) SubCategories(catID string) ([]domain.SubCategory, error) {
	return s.Subs.ListByCategory(catID)
}

func (s *CatalogService) ListProducts(catID, subID string, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Prods.ListByCategory(catID, subID, pageSize, offset)
}

func (s *CatalogService) FeaturedProducts(limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	return s.Prods.ListFeatured(limit)
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) Search(q, catID string, minPrice, maxPrice float64, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Prods.Search(q, catID, minPrice, maxPrice, pageSize, offset)
}

// Availability maps the stock column to the storefront status badge.
func (s *CatalogService) Availability(productID string) (domain.Availability, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		return domain.Availability{Status: "OUT_OF_STOCK"}, nil
	}
	status := "OUT_OF_STOCK"
	switch {
	case p.Stock >= 5:
		status = "IN_STOCK"
	case p.Stock > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: p.Stock}, nil
}
