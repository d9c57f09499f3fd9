// Package database opens the connections the API server serves from.
package database

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectTimeout = 10 * time.Second

// ConnectMongo connects and pings the server; a client is only returned once
// the server has answered.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parse mongo uri")
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, pkgerrors.Wrap(err, "ping mongo")
	}

	log.Info().Strs("hosts", cs.Hosts).Msg("MongoDB connected")
	return client, nil
}

type PostgresCfg struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

func (c PostgresCfg) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Name,
	)
}

// OpenPostgres opens gorm over Postgres. gorm pings on open, so an unreachable
// server fails here.
func OpenPostgres(cfg PostgresCfg, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "open postgres")
	}

	log.Info().Str("host", cfg.Host).Int("port", cfg.Port).Msg("Postgres connected")
	return db, nil
}
