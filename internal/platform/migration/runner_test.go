// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestConvertToPgx5DSN verifies every accepted scheme is rewritten for golang-migrate.
*/
func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		name     string
		dsn      string
		expected string
	}{
		{"postgres_scheme", "postgres://u:p@db:5432/mosaic", "pgx5://u:p@db:5432/mosaic"},
		{"postgresql_scheme", "postgresql://db/mosaic?sslmode=disable", "pgx5://db/mosaic?sslmode=disable"},
		{"already_pgx5", "pgx5://db/mosaic", "pgx5://db/mosaic"},
		{"keyword_dsn_untouched", "host=db dbname=mosaic", "host=db dbname=mosaic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, convertToPgx5DSN(tt.dsn))
		})
	}
}
