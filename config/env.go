package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	AppEnv     string
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	JWTSecret  string
	JWTExpiry  string

	// Payment provider (Stripe-compatible checkout API)
	PaymentBaseURL       string
	PaymentSecretKey     string
	PaymentWebhookSecret string
	Currency             string
	CheckoutSuccessURL   string
	CheckoutCancelURL    string
	DynamicPrices        bool

	// Storefront pricing policy
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	CartTTL               time.Duration

	UploadDir     string
	MaxUploadSize int64
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	maxUploadSize, _ := strconv.ParseInt(os.Getenv("MAX_UPLOAD_SIZE"), 10, 64)
	if maxUploadSize == 0 {
		maxUploadSize = 5242880
	}

	cartTTL, err := time.ParseDuration(getEnv("CART_TTL", "720h"))
	if err != nil {
		cartTTL = 30 * 24 * time.Hour
	}

	AppConfig = &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		Port:       getEnv("APP_PORT", getEnv("PORT", "8082")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "carers_store"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		JWTExpiry:  getEnv("JWT_EXPIRY", "24h"),

		PaymentBaseURL:       getEnv("PAYMENT_BASE_URL", "http://localhost:4242"),
		PaymentSecretKey:     getEnv("PAYMENT_SECRET_KEY", ""),
		PaymentWebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", ""),
		Currency:             getEnv("CURRENCY", "gbp"),
		CheckoutSuccessURL:   getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:5173/success?session_id={CHECKOUT_SESSION_ID}"),
		CheckoutCancelURL:    getEnv("CHECKOUT_CANCEL_URL", "http://localhost:5173/cart"),
		DynamicPrices:        getEnv("DYNAMIC_PRICES", "true") == "true",

		FreeShippingThreshold: getDecimal("FREE_SHIPPING_THRESHOLD", "50"),
		FlatShippingFee:       getDecimal("FLAT_SHIPPING_FEE", "3.99"),
		CartTTL:               cartTTL,

		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: maxUploadSize,
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDecimal(key, defaultValue string) decimal.Decimal {
	raw := getEnv(key, defaultValue)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("Invalid decimal for %s: %q, using default %s", key, raw, defaultValue)
		d, _ = decimal.NewFromString(defaultValue)
	}
	return d
}
