package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	VNPay    VNPayConfig
	Rental   RentalConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// VNPayConfig holds the gateway credentials and endpoints. TmnCode and
// HashSecret are mandatory; the client refuses to start without them.
type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	PaymentURL string
	APIURL     string
	ReturnURL  string
	OrderType  string
	Locale     string
}

type RentalConfig struct {
	// ReleaseOnUnassign frees a motorcycle back to ready when it is
	// unassigned from an item even while the rental is confirmed/rented.
	ReleaseOnUnassign bool
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("VNPAY_PAYMENT_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html")
	viper.SetDefault("VNPAY_API_URL", "https://sandbox.vnpayment.vn/merchant_webapi/api/transaction")
	viper.SetDefault("VNPAY_RETURN_URL", "http://localhost:8080/payment/vnpay_return")
	viper.SetDefault("VNPAY_ORDER_TYPE", "other")
	viper.SetDefault("VNPAY_LOCALE", "vn")
	viper.SetDefault("RENTAL_RELEASE_ON_UNASSIGN", false)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		VNPay: VNPayConfig{
			TmnCode:    viper.GetString("VNPAY_TMN_CODE"),
			HashSecret: viper.GetString("VNPAY_HASH_SECRET"),
			PaymentURL: viper.GetString("VNPAY_PAYMENT_URL"),
			APIURL:     viper.GetString("VNPAY_API_URL"),
			ReturnURL:  viper.GetString("VNPAY_RETURN_URL"),
			OrderType:  viper.GetString("VNPAY_ORDER_TYPE"),
			Locale:     viper.GetString("VNPAY_LOCALE"),
		},
		Rental: RentalConfig{
			ReleaseOnUnassign: viper.GetBool("RENTAL_RELEASE_ON_UNASSIGN"),
		},
	}

	return config, nil
}
