package configs

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"bulusma.link/configs/configslog"
)

// Config uygulamanın ortam değişkenlerinden okunan ayarları.
type Config struct {
	AppEnv     string        `env:"APP_ENV" envDefault:"development"`
	ListenAddr string        `env:"LISTEN_ADDR" envDefault:":3000"`
	JWTSecret  string        `env:"JWT_SECRET,required"`
	JWTIssuer  string        `env:"JWT_ISSUER" envDefault:"bulusma.link"`
	JWTTTL     time.Duration `env:"JWT_TTL" envDefault:"3h"`
	QRImageSize int          `env:"QR_IMAGE_SIZE" envDefault:"256"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:""`
	DBName     string `env:"DB_NAME" envDefault:"bulusma"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

var cfg *Config

// LoadConfig .env dosyasını (varsa) yükler ve ortam değişkenlerini parse eder.
// JWT_SECRET zorunludur, eksikse hata döner.
func LoadConfig() (*Config, error) {
	// .env bulunamazsa sorun değil, ortam değişkenleri yeterli olabilir.
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Debug(".env dosyası bulunamadı, ortam değişkenleri kullanılacak.")
	}

	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, err
	}
	cfg = &c
	return cfg, nil
}

// GetConfig yüklenmiş konfigürasyonu döndürür. LoadConfig çağrılmadan
// kullanılmamalıdır.
func GetConfig() *Config {
	if cfg == nil {
		panic("config yüklenmeden kullanıldı: önce LoadConfig çağrılmalı")
	}
	return cfg
}

// SetConfig testlerde konfigürasyonu elle vermek için kullanılır.
func SetConfig(c *Config) {
	cfg = c
}
