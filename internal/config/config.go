// Package config загружает конфигурацию приложения.
//
// Источники (по убыванию приоритета):
//   - переменные окружения процесса
//   - .env файл (путь из --env / CITYWEATHER_ENV_FILE, иначе ./.env, если есть)
//   - значения по умолчанию
//
// Config создаётся один раз при старте и дальше только читается.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/shaiso/cityweather/internal/domain"
)

// Ключи конфигурации. Совпадают с именами переменных окружения в нижнем регистре.
const (
	keyWeatherAPIKey  = "openweather_api_key"
	keyImageAccessKey = "unsplash_access_key"
	keyWeatherBaseURL = "weather_base_url"
	keyImageBaseURL   = "image_base_url"
	keyDefaultCity    = "default_city"
	keyHTTPTimeout    = "http_timeout"
	keyWebPort        = "web_port"
	keyWatchCron      = "watch_cron"
	keyEnvFile        = "cityweather_env_file"
)

// Значения по умолчанию.
const (
	DefaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	DefaultImageBaseURL   = "https://api.unsplash.com/photos/random"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultWebPort        = "8080"
	DefaultWatchCron      = "*/10 * * * *"

	defaultEnvFile = ".env"
)

// ErrEnvFile — не удалось прочитать .env файл.
var ErrEnvFile = errors.New("read env file")

// Config — конфигурация приложения.
type Config struct {
	Weather struct {
		APIKey  string
		BaseURL string
	}
	Image struct {
		AccessKey string
		BaseURL   string
	}

	// DefaultCity — город, если пользователь ничего не ввёл.
	DefaultCity string

	// HTTPTimeout — таймаут исходящих HTTP-запросов.
	HTTPTimeout time.Duration

	Web struct {
		Port string
	}
	Watch struct {
		Cron string
	}
}

// Load загружает конфигурацию.
//
// envFile — явный путь к .env файлу. Если пуст, берётся CITYWEATHER_ENV_FILE,
// затем ./.env (только если файл существует). Явно указанный, но
// отсутствующий файл — ошибка.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	explicit := envFile != ""
	if !explicit {
		if p := v.GetString(keyEnvFile); p != "" {
			envFile, explicit = p, true
		} else {
			envFile = defaultEnvFile
		}
	}

	if explicit || fileExists(envFile) {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrEnvFile, envFile, err)
		}
	}

	cfg := &Config{
		DefaultCity: v.GetString(keyDefaultCity),
		HTTPTimeout: v.GetDuration(keyHTTPTimeout),
	}
	cfg.Weather.APIKey = v.GetString(keyWeatherAPIKey)
	cfg.Weather.BaseURL = strings.TrimRight(v.GetString(keyWeatherBaseURL), "/")
	cfg.Image.AccessKey = v.GetString(keyImageAccessKey)
	cfg.Image.BaseURL = strings.TrimRight(v.GetString(keyImageBaseURL), "/")
	cfg.Web.Port = v.GetString(keyWebPort)
	cfg.Watch.Cron = v.GetString(keyWatchCron)

	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}
	if strings.TrimSpace(cfg.DefaultCity) == "" {
		cfg.DefaultCity = domain.DefaultCity
	}

	return cfg, nil
}

// MissingCredentials возвращает имена переменных с пустыми ключами API.
// Отсутствие ключей не блокирует запуск: запросы просто вернут ошибку API.
func (c *Config) MissingCredentials() []string {
	var missing []string
	if c.Weather.APIKey == "" {
		missing = append(missing, strings.ToUpper(keyWeatherAPIKey))
	}
	if c.Image.AccessKey == "" {
		missing = append(missing, strings.ToUpper(keyImageAccessKey))
	}
	return missing
}

// Addr возвращает адрес для HTTP сервера.
func (c *Config) Addr() string {
	return ":" + c.Web.Port
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyWeatherAPIKey, "")
	v.SetDefault(keyImageAccessKey, "")
	v.SetDefault(keyWeatherBaseURL, DefaultWeatherBaseURL)
	v.SetDefault(keyImageBaseURL, DefaultImageBaseURL)
	v.SetDefault(keyDefaultCity, domain.DefaultCity)
	v.SetDefault(keyHTTPTimeout, DefaultHTTPTimeout)
	v.SetDefault(keyWebPort, DefaultWebPort)
	v.SetDefault(keyWatchCron, DefaultWatchCron)
	v.SetDefault(keyEnvFile, "")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
