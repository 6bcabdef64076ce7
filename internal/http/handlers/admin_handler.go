package handlers

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/domain"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/feed"
	applog "github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/log"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/repos"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	Orders *repos.OrderRepo
	Cats   *repos.CategoryRepo
	Subs   *repos.SubCategoryRepo
	Prods  *repos.ProductRepo
	Videos *repos.VideoRepo
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	ords, _ := h.Orders.ListLatest(10)
	return render(c, "admin_dashboard", fiber.Map{"Orders": ords})
}

// ---------- Orders ----------

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	ords, err := h.Orders.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "admin_orders", fiber.Map{"Orders": ords})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	status, ok := validate.Status(c.FormValue("status"))
	if id == "" || !ok {
		return c.Status(400).SendString("missing id or bad status")
	}
	if err := h.Orders.UpdateStatus(id, status); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return c.Status(400).SendString("could not update status")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders")
}

// ---------- Products ----------

// GET /admin/products
func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	prods, err := h.Prods.ListAll()
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	cats, _ := h.Cats.List()
	subs, _ := h.Subs.List()
	return render(c, "admin_products", fiber.Map{"Products": prods, "Categories": cats, "SubCategories": subs})
}

// POST /admin/products
func (h *AdminHandler) SaveProduct(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.FormValue("id"))
	if id == "" {
		id = uuid.NewString()
	} else if _, ok := validate.ID(id); !ok {
		return c.Status(400).SendString("bad id")
	}
	title, ok := validate.Name(c.FormValue("title"))
	if !ok {
		return c.Status(400).SendString("bad title")
	}
	catID, ok := validate.ID(c.FormValue("category_id"))
	if !ok {
		return c.Status(400).SendString("bad category")
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return c.Status(400).SendString("bad price")
	}
	stock, err := strconv.Atoi(c.FormValue("stock", "0"))
	if err != nil || stock < 0 {
		return c.Status(400).SendString("bad stock")
	}

	images := strings.Fields(c.FormValue("images"))
	if len(images) == 0 {
		images = []string{feed.PlaceholderImage}
	}
	imagesJSON, _ := json.Marshal(images)

	p := domain.Product{
		ID:            id,
		CategoryID:    catID,
		SubCategoryID: strings.TrimSpace(c.FormValue("subcategory_id")),
		Title:         title,
		Description:   c.FormValue("description"),
		Price:         price,
		ImagesJSON:    string(imagesJSON),
		Stock:         stock,
		Featured:      c.FormValue("featured") == "on",
		Hidden:        c.FormValue("hidden") == "on",
	}
	if err := h.Prods.Save(p); err != nil {
		applog.Error(c, "admin.products.save.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not save product")
	}
	applog.Audit(c, "admin.products.save", map[string]any{"product": id})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id/delete
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Prods.Delete(id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not delete product")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.Redirect("/admin/products")
}

// ---------- Categories ----------

// GET /admin/categories
func (h *AdminHandler) CategoriesPage(c *fiber.Ctx) error {
	cats, err := h.Cats.List()
	if err != nil {
		applog.Error(c, "admin.categories.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load categories"})
	}
	subs, _ := h.Subs.List()
	return render(c, "admin_categories", fiber.Map{"Categories": cats, "SubCategories": subs})
}

// POST /admin/categories
func (h *AdminHandler) SaveCategory(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.FormValue("id"))
	if id == "" {
		id = uuid.NewString()
	} else if _, ok := validate.ID(id); !ok {
		return c.Status(400).SendString("bad id")
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return c.Status(400).SendString("bad name")
	}
	cat := domain.Category{
		ID:       id,
		Name:     name,
		Slug:     feed.Slugify(name, id),
		ParentID: strings.TrimSpace(c.FormValue("parent_id")),
	}
	if err := h.Cats.Upsert(cat); err != nil {
		applog.Error(c, "admin.categories.save.fail", err, map[string]any{"category": id})
		return c.Status(400).SendString("could not save category")
	}
	applog.Audit(c, "admin.categories.save", map[string]any{"category": id})
	return c.Redirect("/admin/categories")
}

// POST /admin/categories/:id/delete
func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Cats.Delete(id); err != nil {
		applog.Error(c, "admin.categories.delete.fail", err, map[string]any{"category": id})
		return c.Status(400).SendString("could not delete category")
	}
	applog.Audit(c, "admin.categories.delete", map[string]any{"category": id})
	return c.Redirect("/admin/categories")
}

// ---------- Subcategories ----------

// POST /admin/subcategories
func (h *AdminHandler) SaveSubCategory(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.FormValue("id"))
	if id == "" {
		id = uuid.NewString()
	} else if _, ok := validate.ID(id); !ok {
		return c.Status(400).SendString("bad id")
	}
	catID, ok := validate.ID(c.FormValue("category_id"))
	if !ok {
		return c.Status(400).SendString("bad category")
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return c.Status(400).SendString("bad name")
	}
	sub := domain.SubCategory{ID: id, CategoryID: catID, Name: name}
	if err := h.Subs.Save(sub); err != nil {
		applog.Error(c, "admin.subcategories.save.fail", err, map[string]any{"subcategory": id})
		return c.Status(400).SendString("could not save subcategory")
	}
	applog.Audit(c, "admin.subcategories.save", map[string]any{"subcategory": id})
	return c.Redirect("/admin/categories")
}

// POST /admin/subcategories/:id/delete
func (h *AdminHandler) DeleteSubCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Subs.Delete(id); err != nil {
		applog.Error(c, "admin.subcategories.delete.fail", err, map[string]any{"subcategory": id})
		return c.Status(400).SendString("could not delete subcategory")
	}
	applog.Audit(c, "admin.subcategories.delete", map[string]any{"subcategory": id})
	return c.Redirect("/admin/categories")
}

// ---------- Promo videos ----------

// GET /admin/videos
func (h *AdminHandler) VideosPage(c *fiber.Ctx) error {
	videos, err := h.Videos.List()
	if err != nil {
		applog.Error(c, "admin.videos.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load videos"})
	}
	return render(c, "admin_videos", fiber.Map{"Videos": videos})
}

// POST /admin/videos
func (h *AdminHandler) SaveVideo(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.FormValue("id"))
	if id == "" {
		id = uuid.NewString()
	} else if _, ok := validate.ID(id); !ok {
		return c.Status(400).SendString("bad id")
	}
	title, ok := validate.Name(c.FormValue("title"))
	if !ok {
		return c.Status(400).SendString("bad title")
	}
	url := strings.TrimSpace(c.FormValue("url"))
	if url == "" {
		return c.Status(400).SendString("missing url")
	}
	if err := h.Videos.Save(domain.Video{ID: id, Title: title, URL: url}); err != nil {
		applog.Error(c, "admin.videos.save.fail", err, map[string]any{"video": id})
		return c.Status(400).SendString("could not save video")
	}
	applog.Audit(c, "admin.videos.save", map[string]any{"video": id})
	return c.Redirect("/admin/videos")
}

// POST /admin/videos/:id/delete
func (h *AdminHandler) DeleteVideo(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Videos.Delete(id); err != nil {
		applog.Error(c, "admin.videos.delete.fail", err, map[string]any{"video": id})
		return c.Status(400).SendString("could not delete video")
	}
	applog.Audit(c, "admin.videos.delete", map[string]any{"video": id})
	return c.Redirect("/admin/videos")
}
