package handlers

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/mailer"
	"storefront/internal/models"
	"storefront/internal/store"
)

const resetTokenTTL = time.Hour

type SignupRequest struct {
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ResetRequest struct {
	Email string `json:"email" binding:"required"`
}

type NewPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func Signup(users *store.UserStore, mail mailer.Sender, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/signup"
		defer handlePanic(c, route)

		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		password := strings.TrimSpace(req.Password)
		if email == "" || password == "" {
			respondWithError(c, http.StatusBadRequest, route, "email and password are required")
			return
		}
		if password != strings.TrimSpace(req.ConfirmPassword) {
			respondWithError(c, http.StatusBadRequest, route, "passwords do not match")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := users.CountByEmail(ctx, email)
		if err != nil {
			log.Println("[AUTH] [ERROR] signup db error:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if count > 0 {
			respondWithError(c, http.StatusConflict, route, "email already registered")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] signup password hash failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "password hash failed")
			return
		}

		user, err := users.Insert(ctx, models.User{
			Email:        email,
			PasswordHash: string(hash),
			Cart:         cart.Clear(),
		})
		if err != nil {
			log.Println("[AUTH] [ERROR] signup insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := mail.Send(
			email,
			"Signup succeeded",
			"You successfully signed up!",
			"<h1>You successfully signed up!</h1>",
		); err != nil {
			respondDomainError(c, route, err)
			return
		}

		accessToken, err := issueUserToken(user.ID, email, jwtSecret, accessTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] signup token generation failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "token generation failed")
			return
		}

		log.Println("[AUTH] [INFO] user registered:", email)
		c.JSON(http.StatusCreated, gin.H{
			"accessToken": accessToken,
			"user": gin.H{
				"id":    user.ID.Hex(),
				"email": email,
			},
		})
	}
}

func Login(users *store.UserStore, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/login"
		defer handlePanic(c, route)

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := users.FindByEmail(ctx, email)
		if err != nil {
			var notFound domain.NotFoundError
			if errors.As(err, &notFound) {
				respondWithError(c, http.StatusUnauthorized, route, "invalid email or password")
				return
			}
			log.Println("[AUTH] [ERROR] login lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			respondWithError(c, http.StatusUnauthorized, route, "invalid email or password")
			return
		}

		accessToken, err := issueUserToken(user.ID, user.Email, jwtSecret, accessTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "token generation failed")
			return
		}

		log.Println("[AUTH] [INFO] user login succeeded:", user.Email)
		c.JSON(http.StatusOK, gin.H{
			"accessToken": accessToken,
			"user": gin.H{
				"id":    user.ID.Hex(),
				"email": user.Email,
			},
		})
	}
}

// RequestPasswordReset stores a hashed single-use token on the account and
// mails the plain token as a link. The token expires after an hour; expiry
// is checked on use, not swept.
func RequestPasswordReset(users *store.UserStore, mail mailer.Sender, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/reset"
		defer handlePanic(c, route)

		var req ResetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := users.FindByEmail(ctx, email)
		if err != nil {
			var notFound domain.NotFoundError
			if errors.As(err, &notFound) {
				respondWithError(c, http.StatusNotFound, route, "no account with that email found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		token := generateTokenString()
		if token == "" {
			respondWithError(c, http.StatusInternalServerError, route, "token generation failed")
			return
		}

		if err := users.SetResetToken(ctx, user.ID, hashToken(token), time.Now().Add(resetTokenTTL)); err != nil {
			log.Println("[AUTH] [ERROR] reset token save failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		resetLink := fmt.Sprintf("%s/auth/reset/%s", baseURL, token)
		if err := mail.Send(
			email,
			"Password reset",
			"You requested a password reset. Open this link to set a new password: "+resetLink,
			fmt.Sprintf(`<p>You requested a password reset</p><p>Click this <a href="%s">link</a> to set a new password.</p>`, resetLink),
		); err != nil {
			respondDomainError(c, route, err)
			return
		}

		log.Println("[AUTH] [INFO] reset token issued for:", email)
		c.JSON(http.StatusOK, gin.H{"message": "reset email sent"})
	}
}

func ConfirmPasswordReset(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/reset/:token"
		defer handlePanic(c, route)

		token := strings.TrimSpace(c.Param("token"))
		if token == "" {
			respondWithError(c, http.StatusBadRequest, route, "token is required")
			return
		}

		var req NewPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := users.FindByResetToken(ctx, hashToken(token))
		if err != nil {
			var notFound domain.NotFoundError
			if errors.As(err, &notFound) {
				respondWithError(c, http.StatusUnauthorized, route, "invalid or expired token")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(req.Password)), bcrypt.DefaultCost)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "password hash failed")
			return
		}

		if err := users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
			log.Println("[AUTH] [ERROR] password update failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[AUTH] [INFO] password reset for:", user.Email)
		c.JSON(http.StatusOK, gin.H{"message": "password updated"})
	}
}

func issueUserToken(userID primitive.ObjectID, email, secret string, accessTTL time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID.Hex(),
		"email":  email,
		"exp":    time.Now().Add(accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func generateTokenString() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
