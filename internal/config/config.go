package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"storefront/internal/delivery"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	JWTSecret      string
	AccessTokenTTL time.Duration
	OrderPrefix    string
	Delivery       delivery.Config
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "storefront"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", 20, time.Minute),
		OrderPrefix:    getEnvOrDefault("ORDER_PREFIX", "ORD"),
		Delivery:       loadDeliveryConfig(),
	}
}

// loadDeliveryConfig builds the pricing configuration handed to the delivery
// engine. The engine itself never reads the environment; everything it needs
// is resolved here once at startup.
func loadDeliveryConfig() delivery.Config {
	return delivery.Config{
		Origin: delivery.Point{
			Lat: getFloatEnv("DELIVERY_ORIGIN_LAT", 41.9842),
			Lng: getFloatEnv("DELIVERY_ORIGIN_LNG", 44.1158),
		},
		RatePerKm:        getFloatEnv("DELIVERY_RATE_PER_KM", 0.5),
		MinFee:           getFloatEnv("DELIVERY_MIN_FEE", 2),
		MaxFee:           getFloatEnv("DELIVERY_MAX_FEE", 40),
		ExpressSurcharge: getFloatEnv("DELIVERY_EXPRESS_SURCHARGE", 5),
		CityTariffs: map[string]float64{
			"გორი":    2,
			"კასპი":   4,
			"ქარელი":  4,
			"ხაშური":  5,
			"მცხეთა":  6,
			"თბილისი": 10,
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
