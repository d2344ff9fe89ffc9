package handlers

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"storefront/internal/domain"
	"storefront/internal/models"
	"storefront/internal/pagination"
	"storefront/internal/storage"
	"storefront/internal/store"
)

// ListSellerProducts pages through the acting user's own catalog entries and
// fans out to the object store to attach each product's image. A failed
// image fetch degrades that one entry instead of failing the listing.
func ListSellerProducts(products *store.ProductStore, objects storage.ObjectStore, pageSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /seller/products"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		page, err := parsePageParam(c.Query("page"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		filter := bson.M{"ownerUserId": userID}

		total, err := products.Count(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		window := pagination.Paginate(total, page, pageSize)
		list, err := products.Find(ctx, filter, window.Skip, window.Limit)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := range list {
			g.Go(func() error {
				body, err := objects.Get(gctx, list[i].ImageKey)
				if err != nil {
					log.Printf("[%s] image fetch failed for %s: %v", route, list[i].ImageKey, err)
					return nil
				}
				list[i].ImageData = base64.StdEncoding.EncodeToString(body)
				return nil
			})
		}
		_ = g.Wait()

		c.JSON(http.StatusOK, gin.H{
			"data": list,
			"pagination": gin.H{
				"page":         page,
				"total":        total,
				"hasNext":      window.HasNext,
				"hasPrevious":  window.HasPrevious,
				"nextPage":     window.NextPage,
				"previousPage": window.PreviousPage,
				"lastPage":     window.LastPage,
			},
		})
	}
}

// CreateProduct uploads the image to the object store, then inserts the
// catalog record. The upload is awaited; its failure fails the request.
func CreateProduct(products *store.ProductStore, objects storage.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /seller/products"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			respondWithError(c, http.StatusUnsupportedMediaType, route, "multipart/form-data required")
			return
		}

		input, err := parseProductForm(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		if !input.TitleSet || input.Title == "" {
			respondWithError(c, http.StatusBadRequest, route, "title required")
			return
		}
		if !input.DescriptionSet || input.Description == "" {
			respondWithError(c, http.StatusBadRequest, route, "description required")
			return
		}
		if !input.PriceSet || input.Price < 0 {
			respondWithError(c, http.StatusBadRequest, route, "invalid price")
			return
		}
		if !input.ImageSet {
			respondWithError(c, http.StatusBadRequest, route, "image required")
			return
		}

		key, err := storage.NewImageKey(input.Image.Filename)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		body, err := readImageFile(input.Image)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		if err := objects.Put(ctx, key, body, storage.ContentTypeForKey(key)); err != nil {
			respondDomainError(c, route, err)
			return
		}

		product, err := products.Insert(ctx, models.Product{
			Title:       input.Title,
			Price:       input.Price,
			Description: input.Description,
			ImageKey:    key,
			OwnerUserID: userID,
		})
		if err != nil {
			log.Println("[SELLER] [ERROR] product insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[SELLER] [INFO] product created:", product.ID.Hex())
		c.JSON(http.StatusCreated, product)
	}
}

// UpdateProduct edits a product the acting user owns. A replacement image
// releases the old object before the new one is uploaded.
func UpdateProduct(products *store.ProductStore, objects storage.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /seller/products/:id"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			respondWithError(c, http.StatusUnsupportedMediaType, route, "multipart/form-data required")
			return
		}

		input, err := parseProductForm(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		existing, err := products.FindByID(ctx, id)
		if err != nil {
			respondDomainError(c, route, err)
			return
		}
		if existing.OwnerUserID != userID {
			respondDomainError(c, route, domain.AuthorizationError{Resource: "product"})
			return
		}

		if input.TitleSet {
			if input.Title == "" {
				respondWithError(c, http.StatusBadRequest, route, "title must not be empty")
				return
			}
			existing.Title = input.Title
		}
		if input.DescriptionSet {
			if input.Description == "" {
				respondWithError(c, http.StatusBadRequest, route, "description must not be empty")
				return
			}
			existing.Description = input.Description
		}
		if input.PriceSet {
			if input.Price < 0 {
				respondWithError(c, http.StatusBadRequest, route, "invalid price")
				return
			}
			existing.Price = input.Price
		}

		if input.ImageSet {
			key, err := storage.NewImageKey(input.Image.Filename)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
			body, err := readImageFile(input.Image)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}

			if err := objects.Delete(ctx, existing.ImageKey); err != nil {
				respondDomainError(c, route, err)
				return
			}
			if err := objects.Put(ctx, key, body, storage.ContentTypeForKey(key)); err != nil {
				respondDomainError(c, route, err)
				return
			}
			existing.ImageKey = key
		}

		if err := products.Update(ctx, existing); err != nil {
			respondDomainError(c, route, err)
			return
		}

		log.Println("[SELLER] [INFO] product updated:", existing.ID.Hex())
		c.JSON(http.StatusOK, existing)
	}
}

// DeleteProduct removes the record and releases its stored image.
func DeleteProduct(products *store.ProductStore, objects storage.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /seller/products/:id"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		existing, err := products.FindByID(ctx, id)
		if err != nil {
			respondDomainError(c, route, err)
			return
		}
		if existing.OwnerUserID != userID {
			respondDomainError(c, route, domain.AuthorizationError{Resource: "product"})
			return
		}

		if err := objects.Delete(ctx, existing.ImageKey); err != nil {
			respondDomainError(c, route, err)
			return
		}

		if err := products.Delete(ctx, id, userID); err != nil {
			respondDomainError(c, route, err)
			return
		}

		log.Println("[SELLER] [INFO] product deleted:", id.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
