package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// GatewayConfig is the configuration of the streaming gateway
type GatewayConfig struct {
	Env      Env
	Server   ServerConfig
	Database DatabaseConfig
	Broker   BrokerConfig
	Stream   StreamConfig
}

// StorageServiceConfig is the configuration of the storage service
type StorageServiceConfig struct {
	Env     Env
	Server  ServerConfig
	Storage StorageConfig
	Minio   MinioConfig
	S3      S3Config
}

// MetadataConfig is the configuration of the metadata service
type MetadataConfig struct {
	Env      Env
	Server   ServerConfig
	Database DatabaseConfig
	Broker   BrokerConfig
}

// HistoryConfig is the configuration of the history service
type HistoryConfig struct {
	Env       Env
	Server    ServerConfig
	Database  DatabaseConfig
	Broker    BrokerConfig
	Retention RetentionConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port string `envconfig:"SERVER_PORT" required:"true"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

type BrokerConfig struct {
	URL string `envconfig:"BROKER_URL" required:"true"`
	// Name identifies the connection on the broker side.
	Name string `envconfig:"BROKER_NAME" default:"flixtube"`
	// DurableQueue turns the ephemeral per-instance queue into a named durable one.
	DurableQueue      string        `envconfig:"BROKER_DURABLE_QUEUE"`
	MaxDeliver        int           `envconfig:"BROKER_MAX_DELIVER" default:"5"`
	AckWait           time.Duration `envconfig:"BROKER_ACK_WAIT" default:"30s"`
	InactiveThreshold time.Duration `envconfig:"BROKER_INACTIVE_THRESHOLD" default:"30s"`
	StreamMaxAge      time.Duration `envconfig:"BROKER_STREAM_MAX_AGE" default:"24h"`
	DeadLetter        bool          `envconfig:"BROKER_DEAD_LETTER" default:"true"`
}

type StreamConfig struct {
	StorageHost     string        `envconfig:"VIDEO_STORAGE_HOST" required:"true"`
	StoragePort     int           `envconfig:"VIDEO_STORAGE_PORT" required:"true"`
	LookupTimeout   time.Duration `envconfig:"GATEWAY_LOOKUP_TIMEOUT" default:"5s"`
	ForwardTimeout  time.Duration `envconfig:"GATEWAY_FORWARD_TIMEOUT" default:"10s"`
	StripHopHeaders bool          `envconfig:"GATEWAY_STRIP_HOP_HEADERS" default:"false"`
	PublishBuffer   int           `envconfig:"GATEWAY_PUBLISH_BUFFER" default:"1024"`
	PublishRetries  int           `envconfig:"GATEWAY_PUBLISH_RETRIES" default:"3"`
	PublishBackoff  time.Duration `envconfig:"GATEWAY_PUBLISH_BACKOFF" default:"200ms"`
}

// StorageURL returns the base url of the storage service
func (s StreamConfig) StorageURL() string {
	return fmt.Sprintf("http://%s:%d", s.StorageHost, s.StoragePort)
}

type StorageConfig struct {
	Backend     string `envconfig:"STORAGE_BACKEND" default:"fs"`
	FSRoot      string `envconfig:"STORAGE_FS_ROOT" default:"./videos"`
	ContentType string `envconfig:"STORAGE_CONTENT_TYPE" default:"video/mp4"`
}

type MinioConfig struct {
	Endpoint   string `envconfig:"MINIO_ENDPOINT"`
	BucketName string `envconfig:"MINIO_BUCKET_NAME" default:"videos"`
	AccessKey  string `envconfig:"MINIO_ACCESS_KEY"`
	SecretKey  string `envconfig:"MINIO_SECRET_KEY"`
	UseSSL     bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

type S3Config struct {
	Region       string `envconfig:"S3_REGION" default:"us-east-1"`
	BucketName   string `envconfig:"S3_BUCKET_NAME" default:"videos"`
	Endpoint     string `envconfig:"S3_ENDPOINT"`
	AccessKey    string `envconfig:"S3_ACCESS_KEY"`
	SecretKey    string `envconfig:"S3_SECRET_KEY"`
	UsePathStyle bool   `envconfig:"S3_USE_PATH_STYLE" default:"false"`
}

type RetentionConfig struct {
	Retention    time.Duration `envconfig:"HISTORY_RETENTION" default:"720h"`
	CleanupEvery time.Duration `envconfig:"HISTORY_CLEANUP_EVERY" default:"1h"`
}

// LoadGateway loads the gateway configuration from the environment
func LoadGateway() (*GatewayConfig, error) {
	var cfg GatewayConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadStorage loads the storage service configuration from the environment
func LoadStorage() (*StorageServiceConfig, error) {
	var cfg StorageServiceConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *StorageServiceConfig) validate() error {
	switch c.Storage.Backend {
	case "fs":
		if c.Storage.FSRoot == "" {
			return fmt.Errorf("STORAGE_FS_ROOT is required for the fs backend")
		}
	case "minio":
		if c.Minio.Endpoint == "" || c.Minio.AccessKey == "" || c.Minio.SecretKey == "" {
			return fmt.Errorf("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required for the minio backend")
		}
	case "s3":
		if c.S3.BucketName == "" {
			return fmt.Errorf("S3_BUCKET_NAME is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (expected fs, minio or s3)", c.Storage.Backend)
	}
	return nil
}

// LoadMetadata loads the metadata service configuration from the environment
func LoadMetadata() (*MetadataConfig, error) {
	var cfg MetadataConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadHistory loads the history service configuration from the environment
func LoadHistory() (*HistoryConfig, error) {
	var cfg HistoryConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	// a zero HISTORY_RETENTION disables pruning, the task itself still needs an interval
	if cfg.Retention.CleanupEvery <= 0 {
		return nil, fmt.Errorf("HISTORY_CLEANUP_EVERY must be positive, got %s", cfg.Retention.CleanupEvery)
	}
	return &cfg, nil
}
