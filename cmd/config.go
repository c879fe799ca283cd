package cmd

type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	DefaultCountryCode  string
	WhatsAppAPIURL      string
	WhatsAppToken       string
	WhatsAppVerifyToken string
	CourierAPIURL       string
	StorefrontBaseURL   string
	ReconcileSchedule   string
}
