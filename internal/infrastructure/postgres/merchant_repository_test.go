package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMerchantRepository(t *testing.T) {
	t.Run("creates repository with nil pool", func(t *testing.T) {
		repo := NewMerchantRepository(nil)
		assert.NotNil(t, repo)
		assert.Nil(t, repo.pool)
	})
}

func TestNewOutboxRepository(t *testing.T) {
	repo := NewOutboxRepository(nil)
	assert.NotNil(t, repo)
	assert.Nil(t, repo.pool)
}

func TestDecodeMatchDetails(t *testing.T) {
	t.Run("empty object is a clear result", func(t *testing.T) {
		entry, err := decodeMatchDetails([]byte(`{}`))
		require.NoError(t, err)
		assert.True(t, entry.IsZero())
	})

	t.Run("sanctions entry", func(t *testing.T) {
		entry, err := decodeMatchDetails([]byte(`{"name":"Shell Corp Ltd","list":"OFAC SDN"}`))
		require.NoError(t, err)
		assert.Equal(t, "Shell Corp Ltd", entry.Name())
		assert.Equal(t, "OFAC SDN", entry.Source())
	})

	t.Run("PEP entry", func(t *testing.T) {
		entry, err := decodeMatchDetails([]byte(`{"name":"John Politician","position":"Former Minister","country":"PH"}`))
		require.NoError(t, err)
		assert.Equal(t, "Former Minister", entry.Source())
		assert.Equal(t, "PH", entry.Country())
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := decodeMatchDetails([]byte(`{"name":`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode match details")
	})
}

func TestNullableTime(t *testing.T) {
	assert.Nil(t, nullableTime(time.Time{}))

	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	got := nullableTime(now)
	require.NotNil(t, got)
	assert.True(t, now.Equal(*got))
	assert.True(t, now.Equal(derefTime(got)))
	assert.True(t, derefTime(nil).IsZero())
}
