package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/domain"
	"storefront/internal/order"
	"storefront/internal/store"
)

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type cartItemView struct {
	Product  interface{} `json:"product"`
	Quantity int         `json:"quantity"`
}

// GetCart returns the populated cart. Entries whose product has vanished
// from the catalog are skipped on display; checkout still rejects them.
func GetCart(users *store.UserStore, products *store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := users.FindByID(ctx, userID)
		if err != nil {
			respondDomainError(c, route, err)
			return
		}

		items := make([]order.PopulatedItem, 0, len(user.Cart.Items))
		views := make([]cartItemView, 0, len(user.Cart.Items))
		for _, item := range user.Cart.Items {
			product, err := products.FindByID(ctx, item.ProductID)
			if err != nil {
				var notFound domain.NotFoundError
				if errors.As(err, &notFound) {
					log.Printf("[%s] skipping vanished product %s", route, item.ProductID.Hex())
					continue
				}
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			items = append(items, order.PopulatedItem{Product: product, Quantity: item.Quantity})
			views = append(views, cartItemView{Product: product, Quantity: item.Quantity})
		}

		c.JSON(http.StatusOK, gin.H{
			"items": views,
			"total": checkout.CartTotal(items),
		})
	}
}

// AddToCart resolves the product first, then applies the pure cart update
// and persists the result. The two steps are explicit: a crash in between
// loses the update, never corrupts it.
func AddToCart(users *store.UserStore, products *store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		product, err := products.FindByID(ctx, productID)
		if err != nil {
			respondDomainError(c, route, err)
			return
		}

		user, err := users.FindByID(ctx, userID)
		if err != nil {
			respondDomainError(c, route, err)
			return
		}

		updated := cart.Add(user.Cart, product)
		if err := users.SaveCart(ctx, userID, updated); err != nil {
			respondDomainError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart": updated})
	}
}

func RemoveFromCart(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart/:productId"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := users.FindByID(ctx, userID)
		if err != nil {
			respondDomainError(c, route, err)
			return
		}

		updated := cart.Remove(user.Cart, productID)
		if err := users.SaveCart(ctx, userID, updated); err != nil {
			respondDomainError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart": updated})
	}
}
