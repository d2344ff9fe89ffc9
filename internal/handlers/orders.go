package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/domain"
	"storefront/internal/invoice"
	"storefront/internal/store"
)

func ListOrders(orders *store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		list, err := orders.FindByUser(ctx, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": list})
	}
}

// GetInvoice streams the order's PDF invoice. Ownership is checked here;
// the renderer itself trusts its input.
func GetInvoice(orders *store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id/invoice"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		record, err := orders.FindByID(ctx, orderID)
		if err != nil {
			respondDomainError(c, route, err)
			return
		}

		if record.UserID != userID {
			respondDomainError(c, route, domain.AuthorizationError{Resource: "order"})
			return
		}

		doc, err := invoice.Render(record)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "invoice rendering failed")
			return
		}

		filename := fmt.Sprintf("invoice-%s.pdf", orderID.Hex())
		c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/pdf", doc)
	}
}
