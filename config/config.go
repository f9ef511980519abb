package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
}

type ServerConfig struct {
	AppEnv         string
	AppName        string
	AppVersion     string
	HTTPPort       string
	GRPCPort       string
	AllowedOrigins []string
	RunMigrations  bool
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
	FileName          string
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type KafkaConfig struct {
	Brokers     []string
	Topic       string
	OrdersTopic string
	GroupID     string
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "dev" || c.Server.AppEnv == "development"
}

// LoadEnv reads configuration from the environment. Values from a .env file must
// already be loaded into the process environment by the caller.
func LoadEnv() *Config {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return &Config{
		Server: ServerConfig{
			AppEnv:         v.GetString("APP_ENV"),
			AppName:        v.GetString("APP_NAME"),
			AppVersion:     v.GetString("APP_VERSION"),
			HTTPPort:       v.GetString("HTTP_PORT"),
			GRPCPort:       v.GetString("GRPC_PORT"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
			RunMigrations:  v.GetBool("RUN_MIGRATIONS"),
		},
		Logger: LoggerConfig{
			Level:             v.GetString("LOGGER_LEVEL"),
			Encoding:          v.GetString("LOGGER_ENCODING"),
			DisableCaller:     v.GetBool("LOGGER_DISABLE_CALLER"),
			DisableStacktrace: v.GetBool("LOGGER_DISABLE_STACKTRACE"),
			FileName:          v.GetString("LOGGER_FILE"),
		},
		Postgres: PostgresConfig{
			Host:            v.GetString("POSTGRES_HOST"),
			Port:            v.GetString("POSTGRES_PORT"),
			User:            v.GetString("POSTGRES_USER"),
			Password:        v.GetString("POSTGRES_PASSWORD"),
			DBName:          v.GetString("POSTGRES_DB"),
			SSLMode:         v.GetString("POSTGRES_SSLMODE"),
			MaxOpenConns:    v.GetInt("POSTGRES_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("POSTGRES_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetInt("POSTGRES_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetInt("POSTGRES_CONN_MAX_IDLE_TIME"),
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(v.GetString("KAFKA_BROKERS")),
			Topic:       v.GetString("KAFKA_TOPIC_PRODUCTS"),
			OrdersTopic: v.GetString("KAFKA_TOPIC_ORDERS"),
			GroupID:     v.GetString("KAFKA_GROUP_CATALOG"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_NAME", "omnipos-catalog-service")
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("HTTP_PORT", ":8000")
	v.SetDefault("GRPC_PORT", ":8082")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("RUN_MIGRATIONS", true)

	v.SetDefault("LOGGER_LEVEL", "debug")
	v.SetDefault("LOGGER_ENCODING", "console")
	v.SetDefault("LOGGER_DISABLE_CALLER", false)
	v.SetDefault("LOGGER_DISABLE_STACKTRACE", true)
	v.SetDefault("LOGGER_FILE", "")

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_USER", "omnipos")
	v.SetDefault("POSTGRES_PASSWORD", "omnipos")
	v.SetDefault("POSTGRES_DB", "omnipos_catalog")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("POSTGRES_MAX_OPEN_CONNS", 10)
	v.SetDefault("POSTGRES_MAX_IDLE_CONNS", 5)
	v.SetDefault("POSTGRES_CONN_MAX_LIFETIME", 300)
	v.SetDefault("POSTGRES_CONN_MAX_IDLE_TIME", 60)

	// Empty broker list disables event publishing and the order listener.
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC_PRODUCTS", "catalog.products")
	v.SetDefault("KAFKA_TOPIC_ORDERS", "orders.events")
	v.SetDefault("KAFKA_GROUP_CATALOG", "catalog")
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
