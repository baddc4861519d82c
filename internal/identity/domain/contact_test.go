package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tograil/Mongocore/internal/identity/domain"
)

func TestContactRecord_Confirm(t *testing.T) {
	record := domain.NewContactRecord("alice@example.com")
	assert.False(t, record.IsConfirmed())

	first := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	record.Confirm(first)

	assert.True(t, record.IsConfirmed())
	assert.Equal(t, first, record.Confirmation.Instant)
}

func TestContactRecord_Confirm_Idempotent(t *testing.T) {
	record := domain.NewContactRecord("alice@example.com")

	first := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	record.Confirm(first)
	record.Confirm(first.Add(time.Hour))

	// The original confirmation instant survives a second confirmation.
	assert.Equal(t, first, record.Confirmation.Instant)
}

func TestContactRecord_Unconfirm(t *testing.T) {
	record := domain.NewContactRecord("alice@example.com")

	first := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	record.Confirm(first)
	record.Unconfirm()

	assert.False(t, record.IsConfirmed())
	assert.Nil(t, record.Confirmation)
}

func TestContactRecord_ReconfirmAfterUnconfirm(t *testing.T) {
	record := domain.NewContactRecord("alice@example.com")

	first := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)

	record.Confirm(first)
	record.Unconfirm()
	record.Confirm(second)

	assert.True(t, record.IsConfirmed())
	assert.Equal(t, second, record.Confirmation.Instant)
	assert.NotEqual(t, first, record.Confirmation.Instant)
}

func TestNewOccurrence_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	local := time.Date(2024, 3, 1, 14, 0, 0, 0, loc)

	occ := domain.NewOccurrence(local)

	assert.Equal(t, time.UTC, occ.Instant.Location())
	assert.True(t, occ.Instant.Equal(local))
}
