package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	AuthUser      string
	AuthPass      string
	BaseURL       string
	CacheSize     int
	LogLevel      string
	QRSize        int
	BarcodeWidth  int
	BarcodeHeight int
	BatchLimit    int
}

func LoadConfig() Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	cacheSize, _ := strconv.Atoi(getEnv("CACHE_SIZE", "1000"))
	qrSize, _ := strconv.Atoi(getEnv("QR_SIZE", "256"))
	barcodeWidth, _ := strconv.Atoi(getEnv("BARCODE_WIDTH", "300"))
	barcodeHeight, _ := strconv.Atoi(getEnv("BARCODE_HEIGHT", "120"))
	batchLimit, _ := strconv.Atoi(getEnv("BATCH_LIMIT", "100"))

	return Config{
		Port:          port,
		DatabaseURL:   getEnv("DATABASE_URL", "barqr.db"),
		AuthUser:      getEnv("AUTH_USER", "admin"),
		AuthPass:      getEnv("AUTH_PASS", "password"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		CacheSize:     cacheSize,
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		QRSize:        qrSize,
		BarcodeWidth:  barcodeWidth,
		BarcodeHeight: barcodeHeight,
		BatchLimit:    batchLimit,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
