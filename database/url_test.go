package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructDatabaseURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		dbName   string
		expected string
	}{
		{
			name:     "no database name returns base url",
			baseURL:  "postgres://u:p@host:5432/existing",
			expected: "postgres://u:p@host:5432/existing",
		},
		{
			name:     "appends name and sslmode",
			baseURL:  "postgres://u:p@host:5432",
			dbName:   "coinbot",
			expected: "postgres://u:p@host:5432/coinbot?sslmode=disable",
		},
		{
			name:     "trailing slash trimmed",
			baseURL:  "postgres://u:p@host:5432/",
			dbName:   "coinbot",
			expected: "postgres://u:p@host:5432/coinbot?sslmode=disable",
		},
		{
			name:     "existing query kept",
			baseURL:  "postgres://u:p@host:5432?connect_timeout=5",
			dbName:   "coinbot",
			expected: "postgres://u:p@host:5432/coinbot?connect_timeout=5&sslmode=disable",
		},
		{
			name:     "explicit sslmode not overridden",
			baseURL:  "postgres://u:p@host:5432?sslmode=require",
			dbName:   "coinbot",
			expected: "postgres://u:p@host:5432/coinbot?sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ConstructDatabaseURL(tt.baseURL, tt.dbName))
		})
	}
}
