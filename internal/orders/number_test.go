package orders

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var numberPattern = regexp.MustCompile(`^ORD-\d{13}-\d{6}$`)

func TestNewOrderNumberFormat(t *testing.T) {
	now := time.Now()
	number := NewOrderNumber("ORD", now)

	require.Regexp(t, numberPattern, number)

	parts := strings.Split(number, "-")
	require.Len(t, parts, 3)

	ms, err := strconv.ParseInt(parts[1], 10, 64)
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), ms)

	suffix, err := strconv.Atoi(parts[2])
	require.NoError(t, err)
	assert.GreaterOrEqual(t, suffix, 0)
	assert.Less(t, suffix, 1000000)
}

func TestNewOrderNumberCustomPrefix(t *testing.T) {
	number := NewOrderNumber("SHOP", time.Now())
	assert.True(t, strings.HasPrefix(number, "SHOP-"))
}

func TestNewOrderNumberVaries(t *testing.T) {
	// The suffix is random; 20 draws at the same instant colliding entirely
	// would be astronomically unlikely.
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		seen[NewOrderNumber("ORD", now)] = true
	}
	assert.Greater(t, len(seen), 1)
}
