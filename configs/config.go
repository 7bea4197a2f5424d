package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	// External collaborators of the intake pipeline
	MLPredictURL     string
	CompressorURL    string // optional remote compression microservice
	StorageUploadURL string // optional HTTP object storage; empty = local disk
	UploadDir        string

	// OTP verification provider
	OTPBaseURL    string
	OTPCustomerID string
	OTPAuthToken  string

	AdminEmail    string
	AdminPassword string
	AdminMobile   string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	return &Config{
		DBSource:  getEnv("DB_SOURCE", "civiceye.db"),
		Port:      getEnv("PORT", "8000"),
		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    time.Duration(24) * time.Hour,

		MLPredictURL:     getEnv("ML_PREDICT_URL", "http://localhost:5000/predict"),
		CompressorURL:    os.Getenv("COMPRESSOR_URL"),
		StorageUploadURL: os.Getenv("STORAGE_UPLOAD_URL"),
		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),

		OTPBaseURL:    getEnv("OTP_BASE_URL", "https://cpaas.messagecentral.com/verification/v3"),
		OTPCustomerID: os.Getenv("OTP_CUSTOMER_ID"),
		OTPAuthToken:  os.Getenv("OTP_AUTH_TOKEN"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminMobile:   os.Getenv("ADMIN_MOBILE"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func MustGetEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		log.Fatalf("missing env: %s", key)
	}
	return v
}
