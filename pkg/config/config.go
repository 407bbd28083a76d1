package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Session       SessionConfig
	Mail          MailConfig
	Admin         AdminConfig
	CORS          CORSConfig
	FeatureFlags  FeatureFlagsConfig
	Uploads       UploadsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"NIA_APP_ENV" required:"true"`
	Port         string `envconfig:"NIA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"NIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NIA_LOG_WARN_STACK" default:"false"`
	StoreName    string `envconfig:"NIA_STORE_NAME" default:"Nia Store"`
	StaticDir    string `envconfig:"NIA_STATIC_DIR" default:"static"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

type DBConfig struct {
	DSN    string `envconfig:"NIA_DB_DSN"`
	Driver string `envconfig:"NIA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"NIA_DB_HOST"`
	LegacyPort     int    `envconfig:"NIA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"NIA_DB_USER"`
	LegacyPassword string `envconfig:"NIA_DB_PASSWORD"`
	LegacyName     string `envconfig:"NIA_DB_NAME"`
	LegacySSLMode  string `envconfig:"NIA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"NIA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"NIA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"NIA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"NIA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is the embedded SQLite backend.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"NIA_REDIS_URL"`
	Address      string        `envconfig:"NIA_REDIS_ADDR"`
	Password     string        `envconfig:"NIA_REDIS_PASSWORD"`
	DB           int           `envconfig:"NIA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NIA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NIA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NIA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NIA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NIA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"NIA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"NIA_JWT_ISSUER" default:"nia-storefront"`
	ExpirationMinutes int    `envconfig:"NIA_JWT_EXPIRATION_MINUTES" default:"720"`
}

// TTL returns the access token lifetime.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"NIA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"NIA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"NIA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"NIA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"NIA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"NIA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"NIA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"NIA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"NIA_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"NIA_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"NIA_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type SessionConfig struct {
	VisitorCookie string        `envconfig:"NIA_SESSION_VISITOR_COOKIE" default:"nia_visitor"`
	TokenCookie   string        `envconfig:"NIA_SESSION_TOKEN_COOKIE" default:"nia_token"`
	VisitorTTL    time.Duration `envconfig:"NIA_SESSION_VISITOR_TTL" default:"168h"`
	SecureCookies bool          `envconfig:"NIA_SESSION_SECURE_COOKIES" default:"false"`
}

type MailConfig struct {
	Host        string        `envconfig:"NIA_MAIL_HOST"`
	Port        int           `envconfig:"NIA_MAIL_PORT" default:"587"`
	Username    string        `envconfig:"NIA_MAIL_USERNAME"`
	Password    string        `envconfig:"NIA_MAIL_PASSWORD"`
	From        string        `envconfig:"NIA_MAIL_FROM"`
	NotifyEmail string        `envconfig:"NIA_MAIL_NOTIFY_EMAIL"`
	Timeout     time.Duration `envconfig:"NIA_MAIL_TIMEOUT" default:"10s"`
}

// Enabled reports whether enough SMTP settings exist to attempt delivery.
func (m MailConfig) Enabled() bool {
	return strings.TrimSpace(m.Host) != "" && strings.TrimSpace(m.NotifyEmail) != ""
}

// Sender returns the envelope sender, falling back to the SMTP username.
func (m MailConfig) Sender() string {
	if from := strings.TrimSpace(m.From); from != "" {
		return from
	}
	return strings.TrimSpace(m.Username)
}

type AdminConfig struct {
	Email    string `envconfig:"NIA_ADMIN_EMAIL"`
	Password string `envconfig:"NIA_ADMIN_PASSWORD"`
	Name     string `envconfig:"NIA_ADMIN_NAME" default:"Administrator"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"NIA_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate    bool `envconfig:"NIA_AUTO_MIGRATE" default:"false"`
	SeedSampleData bool `envconfig:"NIA_SEED_SAMPLE_DATA" default:"false"`
}

type UploadsConfig struct {
	MaxUploadMB int `envconfig:"NIA_MAX_UPLOAD_MB" default:"10"`
}

// MaxBytes returns the multipart size ceiling in bytes.
func (u UploadsConfig) MaxBytes() int64 {
	if u.MaxUploadMB <= 0 {
		return 10 << 20
	}
	return int64(u.MaxUploadMB) << 20
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvDBDriver, DBDriverSQLite)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
