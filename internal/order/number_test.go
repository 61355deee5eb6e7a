package order

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{8}-\d{4}$`)

func TestGenerateOrderNumber_Format(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 14, 12, 30, 0, 0, time.UTC)
	n := GenerateOrderNumber(now)

	require.Regexp(t, orderNumberPattern, n)
	assert.Equal(t, "ORD-20250314-", n[:13])
}

func TestGenerateOrderNumber_UniquenessSampling(t *testing.T) {
	t.Parallel()

	// The 4-digit suffix gives a 10k space; 1000 draws should stay far from
	// exhausting it. This is a sampling check, not a uniqueness proof; the
	// database unique index plus retry handles the residual collisions.
	now := time.Now()
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		seen[GenerateOrderNumber(now)] = struct{}{}
	}
	assert.Greater(t, len(seen), 900)
}
