package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/mailer"
	"storefront/internal/middleware"
	"storefront/internal/storage"
	"storefront/internal/store"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatalln("[MAIN] [ERROR] mongo connection failed:", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Println("[MAIN] [WARN] mongo disconnect failed:", err)
		}
	}()

	db := client.Database(config.AppEnv.DBName)

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Println("[MAIN] [WARN] user index creation failed:", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Println("[MAIN] [WARN] product index creation failed:", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Println("[MAIN] [WARN] order index creation failed:", err)
	}

	users := store.NewUserStore(db)
	products := store.NewProductStore(db)
	orders := store.NewOrderStore(db)

	objects, err := storage.NewS3Store(context.Background(), storage.S3Config{
		Bucket:    config.AppEnv.S3Bucket,
		Region:    config.AppEnv.S3Region,
		AccessKey: config.AppEnv.AWSAccessKey,
		SecretKey: config.AppEnv.AWSSecretKey,
	})
	if err != nil {
		log.Fatalln("[MAIN] [ERROR] object store init failed:", err)
	}

	mail := mailer.New(config.AppEnv.SendGridKey, config.AppEnv.SenderEmail)

	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/products", handlers.ListProducts(products, config.AppEnv.PageSize))
	router.GET("/products/:id", handlers.GetProduct(products))

	auth := router.Group("/auth")
	{
		auth.POST("/signup", handlers.Signup(users, mail, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
		auth.POST("/login", handlers.Login(users, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
		auth.POST("/reset", handlers.RequestPasswordReset(users, mail, config.AppEnv.BaseURL))
		auth.POST("/reset/:token", handlers.ConfirmPasswordReset(users))
	}

	user := router.Group("/")
	user.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		user.GET("/cart", handlers.GetCart(users, products))
		user.POST("/cart", handlers.AddToCart(users, products))
		user.DELETE("/cart/:productId", handlers.RemoveFromCart(users))

		user.GET("/checkout", handlers.StartCheckout(users, products, config.AppEnv.StripeKey, config.AppEnv.BaseURL))
		user.GET("/checkout/success", handlers.CheckoutSuccess(users, products, orders))

		user.GET("/orders", handlers.ListOrders(orders))
		user.GET("/orders/:id/invoice", handlers.GetInvoice(orders))
	}

	seller := router.Group("/seller")
	seller.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		seller.GET("/products", handlers.ListSellerProducts(products, objects, config.AppEnv.PageSize))
		seller.POST("/products", handlers.CreateProduct(products, objects))
		seller.PUT("/products/:id", handlers.UpdateProduct(products, objects))
		seller.DELETE("/products/:id", handlers.DeleteProduct(products, objects))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("[MAIN] [INFO] listening on port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalln("[MAIN] [ERROR] server stopped:", err)
	}
}
