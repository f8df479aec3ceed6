// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestDriverURL switches postgres URLs to the pgx5 scheme and rejects the rest.
*/
func TestDriverURL(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		want    string
		wantErr bool
	}{
		{"postgres", "postgres://snap:pw@db:5432/snapduel?sslmode=disable", "pgx5://snap:pw@db:5432/snapduel?sslmode=disable", false},
		{"postgresql", "postgresql://db/snapduel", "pgx5://db/snapduel", false},
		{"already_pgx5", "pgx5://db/snapduel", "pgx5://db/snapduel", false},
		{"keyword_dsn", "host=db user=snap dbname=snapduel", "", true},
		{"other_scheme", "mysql://db/snapduel", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := driverURL(tt.dsn)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestMigrateLogger_Verbose follows the logger level.
*/
func TestMigrateLogger_Verbose(t *testing.T) {
	var buffer bytes.Buffer

	quiet := &migrateLogger{logger: slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelInfo}))}
	assert.False(t, quiet.Verbose())

	loud := &migrateLogger{logger: slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	assert.True(t, loud.Verbose())

	loud.Printf("Read and execute %s", "000001_init.up.sql")
	assert.Contains(t, buffer.String(), "000001_init.up.sql")
}
