package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/domain"
	applog "github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/log"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/payment"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/repos"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/services"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/validate"
)

type OrderHandler struct {
	Cart    *services.CartService
	Order   *services.OrderService
	Repo    *repos.OrderRepo
	Auth    *services.AuthService
	Gateway *payment.Gateway
}

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "checkout", fiber.Map{"Cart": cv, "CardEnabled": h.Gateway.Enabled()})
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid email")
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return c.Status(fiber.StatusBadRequest).SendString("name must be 1-60 characters")
	}
	phone, ok := validate.Phone(c.FormValue("phone"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "phone"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid phone")
	}
	address, ok := validate.Name(c.FormValue("address"))
	if !ok {
		address = ""
	}

	method := strings.ToLower(strings.TrimSpace(c.FormValue("payment")))
	if method != domain.PayCard {
		method = domain.PayCOD
	}
	if method == domain.PayCard && !h.Gateway.Enabled() {
		method = domain.PayCOD
	}

	contact := services.Contact{Name: name, Email: email, Phone: phone, Address: address}
	orderID, total, err := h.Order.Place(sid, method, contact)
	if err != nil {
		// business rule errors (e.g., insufficient stock) surface as 400
		applog.Security(c, "order.place.fail", map[string]any{"sid": sid, "error": err.Error()})
		return c.Status(fiber.StatusBadRequest).SendString("Could not place order. Please review quantities and try again.")
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": orderID, "total": total, "payment": method})

	if method == domain.PayCard {
		// Self-submitting form to the card processor; the callback flips the
		// order to PAID.
		return render(c, "payment_redirect", fiber.Map{"Form": h.Gateway.Checkout(orderID, total)})
	}
	return c.Redirect("/order/" + orderID)
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid := c.Params("id")
	if oid == "" {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}

	o, items, err := h.Repo.Get(oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}

	// Ownership check: session owner only; admins allowed
	sid := c.Cookies("sid")
	if sid == "" || sid != o.SessionID {
		var role string
		if h.Auth != nil && sid != "" {
			if u, err := h.Auth.CurrentUser(sid); err == nil && u != nil {
				role = u.Role
			}
		}
		if role != "ADMIN" {
			applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
		}
	}

	return render(c, "order", fiber.Map{"Order": o, "Items": items})
}

// Callback handles the card processor's server-to-server notification.
func (h *OrderHandler) Callback(c *fiber.Ctx) error {
	// Without merchant credentials there is no shared secret, so no callback
	// can be authentic.
	if !h.Gateway.Enabled() {
		applog.Security(c, "payment.callback.disabled", nil)
		return c.SendStatus(fiber.StatusForbidden)
	}

	orderID := c.FormValue("order_id")
	amount := c.FormValue("amount")
	currency := c.FormValue("currency")
	status := c.FormValue("status")
	signature := c.FormValue("signature")

	if !h.Gateway.VerifyCallback(orderID, amount, currency, signature) {
		applog.Security(c, "payment.callback.badsig", map[string]any{"order_id": orderID})
		return c.SendStatus(fiber.StatusForbidden)
	}
	if status != "success" {
		applog.Info(c, "payment.callback.ignored", map[string]any{"order_id": orderID, "status": status})
		return c.SendStatus(fiber.StatusOK)
	}
	if err := h.Order.MarkPaid(orderID); err != nil {
		applog.Error(c, "payment.callback.markpaid", err, map[string]any{"order_id": orderID})
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	applog.Audit(c, "payment.callback.paid", map[string]any{"order_id": orderID, "amount": amount})
	return c.SendStatus(fiber.StatusOK)
}
