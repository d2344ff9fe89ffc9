package checkout

import (
	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"

	"storefront/internal/domain"
)

// SessionRequest carries the non-line-item parts of a checkout session.
type SessionRequest struct {
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
}

// CreateSession asks the payment gateway for a hosted checkout session and
// returns its id. One attempt; a gateway failure surfaces as UpstreamError.
func CreateSession(apiKey string, lines []LineItem, req SessionRequest) (string, error) {
	stripe.Key = apiKey

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, line := range lines {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(line.Name),
		}
		if line.Description != "" {
			productData.Description = stripe.String(line.Description)
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(line.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(line.Currency),
				UnitAmount:  stripe.Int64(line.UnitAmountMinorUnits),
				ProductData: productData,
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:     lineItems,
		SuccessURL:    stripe.String(req.SuccessURL),
		CancelURL:     stripe.String(req.CancelURL),
		CustomerEmail: stripe.String(req.CustomerEmail),
	}

	s, err := session.New(params)
	if err != nil {
		return "", domain.UpstreamError{Service: "payment gateway", Err: err}
	}
	return s.ID, nil
}
