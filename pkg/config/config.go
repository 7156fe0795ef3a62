package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Webhook WebhookConfig
	Store   StoreConfig
	Session SessionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// WebhookConfig endpoints del servicio de automatización n8n.
// Toda la persistencia de negocio vive del otro lado de estos webhooks;
// este servicio solo los consume.
type WebhookConfig struct {
	BaseURL   string // webhook CRUD proyectos/propiedades/usuarios
	LoginPath string // ruta relativa del login por email
	CargaURL  string // webhook de carga masiva de propiedades (multipart)
	Timeout   time.Duration
	RetryMax  int
}

// LoginURL devuelve la URL absoluta del endpoint de login.
func (c WebhookConfig) LoginURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(c.LoginPath, "/")
}

// StoreConfig backend del almacén de sesión.
// driver "file" persiste en disco (un archivo JSON por clave); "postgres" usa una
// tabla clave/valor para despliegues con varias réplicas.
type StoreConfig struct {
	Driver      string // file, postgres
	Dir         string // directorio de estado para el driver file
	DatabaseURL string // DSN para el driver postgres
}

// SessionConfig parámetros del ciclo de vida de sesión.
type SessionConfig struct {
	RefreshDelay time.Duration // espera antes del refresh desacoplado tras una navegación
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, WEBHOOK_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "sozu-backoffice"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Webhook: WebhookConfig{
			BaseURL:   getString(v, "WEBHOOK_BASE_URL", "https://n8n.sozu.com/webhook/crud-proyectos-propiedades-usuarios"),
			LoginPath: getString(v, "WEBHOOK_LOGIN_PATH", "loginconvalidacion"),
			CargaURL:  getString(v, "WEBHOOK_CARGA_URL", ""),
			Timeout:   getDuration(v, "WEBHOOK_TIMEOUT", 15*time.Second),
			RetryMax:  getInt(v, "WEBHOOK_RETRY_MAX", 2),
		},
		Store: StoreConfig{
			Driver:      getString(v, "STORE_DRIVER", "file"),
			Dir:         getString(v, "STORE_DIR", "./.estado"),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
		},
		Session: SessionConfig{
			RefreshDelay: getDuration(v, "SESSION_REFRESH_DELAY", 300*time.Millisecond),
		},
	}

	if cfg.Store.Driver == "postgres" && cfg.Store.DatabaseURL == "" {
		return nil, fmt.Errorf("config: STORE_DRIVER=postgres requiere DATABASE_URL")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if v.IsSet(key) {
		if d := v.GetDuration(key); d > 0 {
			return d
		}
	}
	return def
}
