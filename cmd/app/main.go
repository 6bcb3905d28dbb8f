package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/partline/auto-parts-backend/internal/cart"
	"github.com/partline/auto-parts-backend/internal/config"
	"github.com/partline/auto-parts-backend/internal/fitment"
	"github.com/partline/auto-parts-backend/internal/product"
	"github.com/partline/auto-parts-backend/internal/storage"
	"github.com/partline/auto-parts-backend/internal/user"
	"github.com/partline/auto-parts-backend/internal/vin"
	"github.com/partline/auto-parts-backend/internal/wishlist"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(checkMiddleware)

	// Repositories: Postgres when DATABASE_URL is set, in-memory otherwise so
	// the server still comes up for local development.
	var (
		userRepo    user.Repository
		productRepo product.Repository
		fitmentRepo fitment.Repository
	)
	if cfg.DatabaseURL != "" {
		db := mustOpenDB(cfg.DatabaseURL)
		defer db.Close()
		ensureSchema(db)

		userRepo = user.NewPostgresRepository(db)
		productRepo = product.NewPostgresRepository(db)
		fitmentRepo = fitment.NewPostgresRepository(db)
	} else {
		log.Println("DATABASE_URL not set, using in-memory repositories")
		userRepo = user.NewInMemoryRepository(nil)
		productRepo = product.NewInMemoryRepository(nil)
		fitmentRepo = fitment.NewInMemoryRepository(nil)
	}

	// Cart and wishlist state lives in Redis keyed by session cookie. Without
	// REDIS_ADDR state survives only as long as the process.
	var kv storage.KV
	if cfg.RedisAddr != "" {
		kv = storage.NewRedisKV(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	} else {
		log.Println("REDIS_ADDR not set, cart and wishlist are in-memory only")
		kv = storage.NewInMemoryKV()
	}

	userHandler := user.NewHandler(user.NewService(userRepo))
	productHandler := product.NewHandler(product.NewService(productRepo))
	fitmentHandler := fitment.NewHandler(fitmentRepo)
	vinHandler := vin.NewHandler(vin.NewClient(cfg.VinAPIBaseURL, &http.Client{Timeout: 10 * time.Second}))
	cartHandler := cart.NewHandler(kv)
	wishlistHandler := wishlist.NewHandler(kv)

	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	fitmentHandler.RegisterPublicRoutes(app)
	vinHandler.RegisterPublicRoutes(app)
	cartHandler.RegisterPublicRoutes(app)
	wishlistHandler.RegisterPublicRoutes(app)

	// Everything registered below requires a bearer token.
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)

	log.Fatal(app.Listen(cfg.Addr))
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
}

func mustOpenDB(url string) *sql.DB {
	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

// ensureSchema creates the tables the repositories expect. Idempotent so it
// runs on every boot.
func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			first_name TEXT,
			last_name TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			slug TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			category TEXT,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			stars DOUBLE PRECISION,
			stock_status BOOLEAN NOT NULL DEFAULT TRUE,
			image_url TEXT,
			warranty INT NOT NULL DEFAULT 0,
			delivery_days INT NOT NULL DEFAULT 0,
			return_days INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS product_images (
			id SERIAL PRIMARY KEY,
			product_id INT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			ord INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS part_fitments (
			id SERIAL PRIMARY KEY,
			product_id INT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			make TEXT NOT NULL,
			model TEXT NOT NULL,
			year_start INT NOT NULL DEFAULT 0,
			year_end INT NOT NULL DEFAULT 0,
			trim TEXT,
			drive_type TEXT,
			body_class TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(fmt.Sprintf("schema migration failed: %v", err))
		}
	}
}

func checkMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	fmt.Printf("URL = %s, Method = %s, Start Time = %v\n", c.OriginalURL(), c.Method(), start)
	return c.Next()
}
