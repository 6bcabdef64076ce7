package services

import (
	"errors"
	"fmt"

	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/domain"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/repos"

	"github.com/google/uuid"
)

type Contact struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type OrderService struct {
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
}

func NewOrderService(carts *repos.CartRepo, prods *repos.ProductRepo, orders *repos.OrderRepo) *OrderService {
	return &OrderService{Carts: carts, Prods: prods, Orders: orders}
}

// Place creates an order from the session's cart. The total is always
// recomputed server-side from captured cart prices. Cash-on-delivery orders
// are final immediately; card orders stay PLACED until the gateway callback
// marks them PAID.
func (s *OrderService) Place(sessionID, method string, contact Contact) (string, float64, error) {
	if method != domain.PayCOD && method != domain.PayCard {
		return "", 0, errors.New("unknown payment method")
	}

	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return "", 0, err
	}

	items, err := s.Carts.Items(cartID)
	if err != nil {
		return "", 0, err
	}
	if len(items) == 0 {
		return "", 0, errors.New("cart empty")
	}

	// pre-check stock
	for _, it := range items {
		p, err := s.Prods.Get(it.ProductID)
		if err != nil {
			return "", 0, err
		}
		if p.Stock < it.Qty {
			return "", 0, fmt.Errorf("insufficient stock for %s (need %d, have %d)", it.ProductID, it.Qty, p.Stock)
		}
	}

	// decrement
	for _, it := range items {
		if err := s.Prods.Decrement(it.ProductID, it.Qty); err != nil {
			return "", 0, err
		}
	}

	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Qty)
	}

	orderID := uuid.NewString()
	if err := s.Orders.Create(repos.OrderRow{
		ID:            orderID,
		SessionID:     sessionID,
		Customer:      contact.Name,
		Email:         contact.Email,
		Phone:         contact.Phone,
		Address:       contact.Address,
		PaymentMethod: method,
		Total:         total,
		Status:        domain.OrderPlaced,
	}); err != nil {
		return "", 0, err
	}
	for _, it := range items {
		if err := s.Orders.InsertItem(orderID, it.ProductID, it.Title, it.Qty, it.Price); err != nil {
			return "", 0, err
		}
	}
	_ = s.Carts.Clear(cartID)
	return orderID, total, nil
}

// MarkPaid flips a card order to PAID after a verified gateway callback.
// Only card orders still awaiting payment qualify; anything else is refused
// so a callback can never rewrite COD or already-settled orders.
func (s *OrderService) MarkPaid(orderID string) error {
	o, _, err := s.Orders.Get(orderID)
	if err != nil {
		return err
	}
	if o.PaymentMethod != domain.PayCard {
		return fmt.Errorf("order %s is not a card order", orderID)
	}
	if o.Status != domain.OrderPlaced {
		return fmt.Errorf("order %s is not awaiting payment (status %s)", orderID, o.Status)
	}
	return s.Orders.UpdateStatus(orderID, domain.OrderPaid)
}
