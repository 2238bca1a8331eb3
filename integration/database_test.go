//go:build database

// Package integration exercises the sample store against real databases.
package integration

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/huangsam/trendline/internal/iostore"
	"github.com/huangsam/trendline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestSampleStoreWithMySQL runs the store lifecycle on a MySQL backend.
func TestSampleStoreWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "trendline",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/trendline?parseTime=true", host, port.Port())
	exerciseStore(t, schema.MySQLBackend, connStr)
}

// TestSampleStoreWithPostgres runs the store lifecycle on a PostgreSQL backend.
func TestSampleStoreWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	exerciseStore(t, schema.PostgreSQLBackend, connStr)
}

// exerciseStore walks one backend through clear, import, read, status,
// delete and a full migration rollback.
func exerciseStore(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	t.Helper()

	require.NoError(t, iostore.ClearStore(backend, "", connStr))

	store, err := iostore.NewSampleStore(backend, connStr)
	require.NoError(t, err)

	insta := schema.SampleMap{"2025-06-01T12:00": 10, "2025-06-01T12:10": 0, "2025-06-01T12:20": 7}
	wechat := schema.SampleMap{"2025-06-01T12:10": 4}

	_, err = store.SaveSeries("insta", insta)
	require.NoError(t, err)
	_, err = store.SaveSeries("wechat", schema.SampleMap{"2025-06-01T09:00": 1})
	require.NoError(t, err)
	_, err = store.SaveSeries("wechat", wechat)
	require.NoError(t, err)

	got, err := store.LoadSeries("insta")
	require.NoError(t, err)
	assert.Equal(t, insta, got)

	got, err = store.LoadSeries("wechat")
	require.NoError(t, err)
	assert.Equal(t, wechat, got)

	infos, err := store.ListSeries()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "insta", infos[0].Name)
	assert.Equal(t, 3, infos[0].SampleCount)
	assert.Equal(t, "2025-06-01T12:00", infos[0].FirstSample)
	assert.Equal(t, "2025-06-01T12:20", infos[0].LastSample)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, string(backend), status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalSeries)
	assert.Equal(t, 4, status.TotalSamples)

	require.NoError(t, store.DeleteSeries("wechat"))
	_, err = store.LoadSeries("wechat")
	assert.ErrorIs(t, err, iostore.ErrSeriesNotFound)
	require.NoError(t, store.Close())

	var out bytes.Buffer
	require.NoError(t, iostore.MigrateStore(&out, backend, connStr, 0))
	assert.Contains(t, out.String(), "to version 0")

	out.Reset()
	require.NoError(t, iostore.MigrateStore(&out, backend, connStr, -1))
	assert.Contains(t, out.String(), "Successfully migrated from version 0")

	require.NoError(t, iostore.ClearStore(backend, "", connStr))
}
