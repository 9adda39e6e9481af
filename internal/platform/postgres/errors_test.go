package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "unique violation code",
			err:      &pgconn.PgError{Code: "23505"},
			expected: true,
		},
		{
			name:     "wrapped unique violation",
			err:      fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: "23505"}),
			expected: true,
		},
		{
			name:     "other postgres error",
			err:      &pgconn.PgError{Code: "23503"}, // foreign key violation
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("connection refused"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, isUniqueViolation(tc.err))
		})
	}
}
