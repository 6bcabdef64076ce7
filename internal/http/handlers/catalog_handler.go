package handlers

import (
	"strconv"
	"strings"

	applog "github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/log"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/repos"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/services"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
	Videos  *repos.VideoRepo
}

func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "home.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the catalog"})
	}
	featured, _ := h.Catalog.FeaturedProducts(8)
	videos, _ := h.Videos.List()
	return render(c, "home", fiber.Map{"Categories": cats, "Featured": featured, "Videos": videos})
}

func (h *CatalogHandler) Category(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Category not found"})
	}
	cat, err := h.Catalog.CategoryBySlug(slug)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Category not found"})
	}

	subID := strings.TrimSpace(c.Query("sub"))
	if subID != "" {
		if _, ok := validate.ID(subID); !ok {
			subID = ""
		}
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))

	products, err := h.Catalog.ListProducts(cat.ID, subID, page, 12)
	if err != nil {
		applog.Error(c, "category.load", err, map[string]any{"category": cat.ID})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	subs, _ := h.Catalog.SubCategories(cat.ID)
	return render(c, "category", fiber.Map{
		"Category": cat, "SubCategories": subs, "SubID": subID,
		"Products": products, "Page": page,
	})
}

func (h *CatalogHandler) Product(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil || p.ID == "" || p.Hidden {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product", fiber.Map{"P": p})
}

// Availability backs GET /api/v1/availability.
func (h *CatalogHandler) Availability(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Query("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	avail, err := h.Catalog.Availability(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(avail)
}
