package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/domain"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondDomainError maps the domain error taxonomy onto HTTP statuses.
func respondDomainError(c *gin.Context, route string, err error) {
	var validation domain.ValidationError
	if errors.As(err, &validation) {
		respondWithError(c, http.StatusBadRequest, route, validation.Error())
		return
	}

	var notFound domain.NotFoundError
	if errors.As(err, &notFound) {
		respondWithError(c, http.StatusNotFound, route, notFound.Error())
		return
	}

	var authz domain.AuthorizationError
	if errors.As(err, &authz) {
		respondWithError(c, http.StatusForbidden, route, authz.Error())
		return
	}

	var emptyCart domain.EmptyCartError
	if errors.As(err, &emptyCart) {
		respondWithError(c, http.StatusUnprocessableEntity, route, emptyCart.Error())
		return
	}

	var upstream domain.UpstreamError
	if errors.As(err, &upstream) {
		log.Printf("[%s] upstream failure: %v", route, err)
		respondWithError(c, http.StatusBadGateway, route, "upstream service failed")
		return
	}

	log.Printf("[%s] unexpected error: %v", route, err)
	respondWithError(c, http.StatusInternalServerError, route, "internal server error")
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": details,
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// currentUserID reads the user id injected by the auth middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, ok := c.Get("userId")
	if !ok {
		return primitive.NilObjectID, false
	}
	userID, ok := value.(primitive.ObjectID)
	return userID, ok
}

// parsePageParam parses the optional 1-based page query value.
func parsePageParam(pageStr string) (int64, error) {
	if strings.TrimSpace(pageStr) == "" {
		return 1, nil
	}
	page, err := strconv.ParseInt(pageStr, 10, 64)
	if err != nil || page < 1 {
		return 0, errors.New("invalid page param")
	}
	return page, nil
}
