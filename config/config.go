package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port        string     `yaml:"port" env:"PORT" env-default:"8080"`
	Environment string     `yaml:"environment" env:"ENVIRONMENT" env-default:"development"`
	JWTSecret   string     `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	Database    Database   `yaml:"database"`
	Redis       Redis      `yaml:"redis"`
	Kafka       Kafka      `yaml:"kafka"`
	Momo        Momo       `yaml:"momo"`
	Cloudinary  Cloudinary `yaml:"cloudinary"`
}

type Database struct {
	User         string `yaml:"user" env:"DB_USER" env-required:"true"`
	Password     string `yaml:"password" env:"DB_PASSWORD" env-required:"true"`
	DatabaseName string `yaml:"database_name" env:"DB_NAME" env-required:"true"`
	Host         string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port         string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	SSLMode      string `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:"disable"`

	// Connection pool settings
	MaxOpenConns    int `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	ConnMaxLifetime int `yaml:"conn_max_lifetime_minutes" env:"DB_CONN_MAX_LIFETIME" env-default:"30"`
}

func (d *Database) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DatabaseName, d.SSLMode)
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`

	// Per-operation timeout in milliseconds applied to every cache call
	OpTimeout int `yaml:"op_timeout_ms" env:"REDIS_OP_TIMEOUT_MS" env-default:"500"`
}

func (r *Redis) GetRedisURL() string {
	return r.Host + ":" + r.Port
}

type Kafka struct {
	Brokers           []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	NotificationTopic string   `yaml:"notification_topic" env:"KAFKA_NOTIFICATION_TOPIC" env-default:"school-notifications"`
	ConsumerGroup     string   `yaml:"consumer_group" env:"KAFKA_CONSUMER_GROUP" env-default:"notification-workers"`
}

type Momo struct {
	BaseURL           string `yaml:"base_url" env:"MOMO_BASE_URL" env-default:"https://sandbox.momodeveloper.mtn.com"`
	SubscriptionKey   string `yaml:"subscription_key" env:"MOMO_SUBSCRIPTION_KEY" env-required:"true"`
	TargetEnvironment string `yaml:"target_environment" env:"MOMO_TARGET_ENVIRONMENT" env-default:"sandbox"`
	CallbackHost      string `yaml:"callback_host" env:"MOMO_CALLBACK_HOST" env-default:"localhost"`
	Currency          string `yaml:"currency" env:"MOMO_CURRENCY" env-default:"EUR"`
	RequestTimeout    int    `yaml:"request_timeout_seconds" env:"MOMO_REQUEST_TIMEOUT" env-default:"30"`
}

type Cloudinary struct {
	CloudName    string `yaml:"cloud_name" env:"CLOUDINARY_CLOUD_NAME"`
	UploadPreset string `yaml:"upload_preset" env:"CLOUDINARY_UPLOAD_PRESET"`
	APIKey       string `yaml:"api_key" env:"CLOUDINARY_API_KEY"`
	APISecret    string `yaml:"api_secret" env:"CLOUDINARY_API_SECRET"`
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func Initialise(filepath string, env bool) (*Config, error) {
	var cfg Config

	var err error
	if env {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(filepath, &cfg)
	}
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
