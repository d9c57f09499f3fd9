package main

import (
	"fmt"
	"time"

	"aspirevote-backend/cmd/aspirevote/database"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "ASPIREVOTE"

const (
	storeMongo    = "mongo"
	storePostgres = "postgres"
)

type ServerCfg struct {
	Store         string `envconfig:"STORE" default:"mongo"`
	MongoURI      string `envconfig:"MONGO_URI"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"aspirevote"`

	DBHost     string `envconfig:"DB_HOST"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`

	Port      int           `envconfig:"PORT" default:"5000"`
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	RedisAddr string        `envconfig:"REDIS_ADDR"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"30s"`

	Debug       bool   `envconfig:"DEBUG"`
	Environment string `envconfig:"ENVIRONMENT" default:"production"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

func loadServerCfg() (ServerCfg, error) {
	var cfg ServerCfg
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return ServerCfg{}, err
	}
	return cfg, cfg.validate()
}

// validate checks the settings the chosen store needs.
func (c ServerCfg) validate() error {
	switch c.Store {
	case storeMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("%s_MONGO_URI is required for the mongo store", envPrefix)
		}
	case storePostgres:
		if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
			return fmt.Errorf("%s_DB_HOST, %s_DB_USER and %s_DB_NAME are required for the postgres store", envPrefix, envPrefix, envPrefix)
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	return nil
}

func (c ServerCfg) postgres() database.PostgresCfg {
	return database.PostgresCfg{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
	}
}

type ClientCfg struct {
	APIURL       string        `envconfig:"API_URL" default:"http://localhost:5000"`
	UserInfoPath string        `envconfig:"USERINFO_PATH" default:"userinfo.json"`
	TokenPath    string        `envconfig:"TOKEN_PATH" default:"token"`
	Timeout      time.Duration `envconfig:"TIMEOUT" default:"10s"`
	Environment  string        `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"warn"`
}

func loadClientCfg() (ClientCfg, error) {
	var cfg ClientCfg
	err := envconfig.Process(envPrefix, &cfg)
	return cfg, err
}
