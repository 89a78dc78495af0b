package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/ariebrainware/cabinet-pediatrie/util"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config holds the application's configuration values.
type Config struct {
	AppName string `json:"appname"`
	AppEnv  string `json:"appenv"`
	AppHost string `json:"apphost"`
	AppPort uint16 `json:"appport"`
	GinMode string `json:"ginmode"`
	// CORSOrigin is the local front-end allowed to call the API.
	CORSOrigin string `json:"cors_origin"`

	DBDriver string `json:"dbdriver"`
	DBPath   string `json:"dbpath"`
	DBHost   string `json:"dbhost"`
	DBPort   uint16 `json:"dbport"`
	DBName   string `json:"dbname"`
	DBUSER   string `json:"dbuser"`
	DBPass   string `json:"dbpass"`

	RedisAddr string `json:"redisaddr"`
	RedisPass string `json:"-"`
	RedisDB   int    `json:"redisdb"`

	LoginRateLimit  int           `json:"login_rate_limit"`
	LoginRateWindow time.Duration `json:"login_rate_window"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from an optional .env file, and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			util.Logger().WithError(err).Debug("No .env file loaded, using process environment")
		}
		config = loadFromEnv()
	})
	return config
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvUint16(key string, fallback uint16) uint16 {
	v, err := strconv.ParseUint(os.Getenv(key), 10, 16)
	if err != nil {
		return fallback
	}
	return uint16(v)
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// loadFromEnv builds a Config from the current process environment.
func loadFromEnv() *Config {
	return &Config{
		AppName:         getEnv("APPNAME", "Cabinet Pédiatrique"),
		AppEnv:          getEnv("APPENV", "development"),
		AppHost:         getEnv("APPHOST", "127.0.0.1"),
		AppPort:         getEnvUint16("APPPORT", 8080),
		GinMode:         getEnv("GINMODE", "release"),
		CORSOrigin:      getEnv("CORS_ORIGIN", "http://localhost:3000"),
		DBDriver:        getEnv("DBDRIVER", DriverSQLite),
		DBPath:          getEnv("DBPATH", "consultations.db"),
		DBHost:          getEnv("DBHOST", "127.0.0.1"),
		DBPort:          getEnvUint16("DBPORT", 3306),
		DBName:          os.Getenv("DBNAME"),
		DBUSER:          os.Getenv("DBUSER"),
		DBPass:          os.Getenv("DBPASS"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPass:       os.Getenv("REDIS_PASS"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		LoginRateLimit:  getEnvInt("LOGIN_RATE_LIMIT", 5),
		LoginRateWindow: getEnvDuration("LOGIN_RATE_WINDOW", 15*time.Minute),
	}
}

// Address is the listen address of the local API.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.AppHost, c.AppPort)
}

// MySQLDSN builds the Data Source Name used when DBDriver is mysql.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true", c.DBUSER, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

// ConnectDB opens the storage handle described by cfg. The caller owns the
// handle and must close it on shutdown. APPENV=test yields a private
// in-memory SQLite database.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	var dialector gorm.Dialector
	switch {
	case cfg.AppEnv == "test":
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
		dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
		dialector = sqlite.Open(dsn)
	case cfg.DBDriver == DriverMySQL:
		dialector = mysql.Open(cfg.MySQLDSN())
	case cfg.DBDriver == DriverSQLite:
		dialector = sqlite.Open(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unsupported DBDRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}

	if cfg.DBDriver == DriverSQLite || cfg.AppEnv == "test" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// One connection for the process lifetime.
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}
