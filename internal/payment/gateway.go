package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Gateway builds signed card-payment requests and verifies callbacks for the
// external card processor. Only the signature handshake lives here; the
// processor hosts the actual payment page.
type Gateway struct {
	URL      string
	Merchant string
	Secret   string
	Currency string
}

func New(url, merchant, secret, currency string) *Gateway {
	return &Gateway{URL: url, Merchant: merchant, Secret: secret, Currency: currency}
}

// Enabled reports whether merchant credentials are configured; without them
// checkout falls back to cash-on-delivery only.
func (g *Gateway) Enabled() bool {
	return g.Merchant != "" && g.Secret != ""
}

// CheckoutForm is rendered as a self-submitting POST form to the processor.
type CheckoutForm struct {
	Action    string
	Merchant  string
	OrderID   string
	Amount    string
	Currency  string
	Signature string
}

func (g *Gateway) Checkout(orderID string, total float64) CheckoutForm {
	amount := strconv.FormatFloat(total, 'f', 2, 64)
	return CheckoutForm{
		Action:    g.URL,
		Merchant:  g.Merchant,
		OrderID:   orderID,
		Amount:    amount,
		Currency:  g.Currency,
		Signature: g.sign(orderID, amount, g.Currency),
	}
}

// VerifyCallback checks the processor's signature on a payment callback.
func (g *Gateway) VerifyCallback(orderID, amount, currency, signature string) bool {
	want := g.sign(orderID, amount, currency)
	return hmac.Equal([]byte(want), []byte(signature))
}

func (g *Gateway) sign(orderID, amount, currency string) string {
	mac := hmac.New(sha256.New, []byte(g.Secret))
	mac.Write([]byte(strings.Join([]string{g.Merchant, orderID, amount, currency}, "|")))
	return hex.EncodeToString(mac.Sum(nil))
}
