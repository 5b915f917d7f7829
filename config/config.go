package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/AakashSorathiya/carrental-service/pkg/kafka"
	"github.com/AakashSorathiya/carrental-service/pkg/logger"
	"github.com/AakashSorathiya/carrental-service/pkg/postgres"

	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration
}

type Auth struct {
	JWTKey        string        `envconfig:"JWT_KEY" default:"car-rental-secret" json:"-"`
	AdminEmail    string        `envconfig:"ADMIN_EMAIL" default:"admin@carrental.io"`
	AdminPassword string        `envconfig:"ADMIN_PASSWORD" default:"admin" json:"-"`
	TokenTTL      time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
}

type Gateway struct {
	CheckInterval time.Duration `envconfig:"GATEWAY_CHECK_INTERVAL" default:"30s"`
}

type Config struct {
	Server   HTTPServer `yaml:"server"`
	Database postgres.DB
	Kafka    kafka.Config
	Auth     Auth
	Gateway  Gateway
	Log      logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
