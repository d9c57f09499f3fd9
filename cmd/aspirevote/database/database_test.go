package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgresCfg_DSN(t *testing.T) {
	cfg := PostgresCfg{
		Host:     "localhost",
		Port:     5432,
		User:     "aspire",
		Password: "p@ss w0rd!",
		Name:     "aspirevote",
	}

	assert.Equal(
		t,
		"host=localhost port=5432 user=aspire password=p@ss w0rd! dbname=aspirevote sslmode=disable TimeZone=UTC",
		cfg.DSN(),
	)
}

func TestConnectMongo_InvalidURI(t *testing.T) {
	client, err := ConnectMongo(context.Background(), "postgres://not-mongo")

	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "parse mongo uri")
}

func TestConnectMongo_EmptyURI(t *testing.T) {
	_, err := ConnectMongo(context.Background(), "")

	assert.Error(t, err)
}
