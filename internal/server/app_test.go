package server

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/todokeeper/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_UnreachableDatabase(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "s"
	cfg.DatabaseDSN = "postgres://u:p@127.0.0.1:1/todokeeper?sslmode=disable&connect_timeout=1"
	require.NoError(t, cfg.Validate())

	app, err := NewApp(context.Background(), cfg)
	assert.Nil(t, app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}
