package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/checkout"
	"storefront/internal/order"
	"storefront/internal/store"
)

// StartCheckout builds gateway line items from the populated cart and opens
// a hosted payment session. The displayed total is computed in major units
// and may differ from the gateway's per-line rounded sum by a fraction of a
// cent; that is accepted behavior.
func StartCheckout(users *store.UserStore, products *store.ProductStore, stripeKey, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /checkout"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		user, err := users.FindByID(ctx, userID)
		if err != nil {
			respondDomainError(c, route, err)
			return
		}

		items, err := order.Populate(ctx, products, user.Cart)
		if err != nil {
			respondDomainError(c, route, err)
			return
		}

		lines, err := checkout.BuildLineItems(items)
		if err != nil {
			respondDomainError(c, route, err)
			return
		}

		sessionID, err := checkout.CreateSession(stripeKey, lines, checkout.SessionRequest{
			SuccessURL:    baseURL + "/checkout/success",
			CancelURL:     baseURL + "/checkout/cancel",
			CustomerEmail: user.Email,
		})
		if err != nil {
			respondDomainError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"sessionId": sessionID,
			"totalSum":  checkout.CartTotal(items),
		})
	}
}

// CheckoutSuccess turns the cart into an immutable order. The order is
// persisted first; the cart is cleared only once the insert succeeded.
func CheckoutSuccess(users *store.UserStore, products *store.ProductStore, orders *store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /checkout/success"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		user, err := users.FindByID(ctx, userID)
		if err != nil {
			respondDomainError(c, route, err)
			return
		}

		items, err := order.Populate(ctx, products, user.Cart)
		if err != nil {
			respondDomainError(c, route, err)
			return
		}

		built, err := order.Build(user, items)
		if err != nil {
			respondDomainError(c, route, err)
			return
		}

		saved, err := order.Finalize(ctx, orders, users, user, built)
		if err != nil {
			respondDomainError(c, route, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"orderId": saved.ID.Hex(),
			"message": "order created",
		})
	}
}
