package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/finchbooks/finch/internal/apperrors"
	"github.com/finchbooks/finch/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionToken_RoundTrip(t *testing.T) {
	stamp := time.Date(2025, 3, 14, 9, 26, 53, 589793238, time.UTC)
	token := domain.NewVersionToken(stamp)

	parsed, err := domain.ParseVersionToken(token.String())
	require.NoError(t, err)
	assert.True(t, token.Equal(parsed), "token should survive its wire form")
	assert.True(t, parsed.Stamp().Equal(stamp))
}

func TestVersionToken_ParseRejectsGarbage(t *testing.T) {
	_, err := domain.ParseVersionToken("not-a-timestamp")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestVersionToken_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	local := time.Date(2025, 3, 14, 14, 0, 0, 0, loc)
	utc := local.UTC()

	assert.True(t, domain.NewVersionToken(local).Equal(domain.NewVersionToken(utc)))
}

func TestVersionToken_IsZero(t *testing.T) {
	assert.True(t, domain.VersionToken{}.IsZero())
	assert.False(t, domain.NewVersionToken(time.Now()).IsZero())
}

func TestCheckVersion(t *testing.T) {
	stored := domain.NewVersionToken(time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC))
	same := domain.NewVersionToken(stored.Stamp())
	stale := domain.NewVersionToken(time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC))

	assert.NoError(t, domain.CheckVersion(stored, same))

	err := domain.CheckVersion(stored, stale)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStaleVersion)

	var staleErr *apperrors.StaleVersionError
	require.True(t, errors.As(err, &staleErr))
	assert.Equal(t, stored.String(), staleErr.Stored)
	assert.Equal(t, stale.String(), staleErr.Supplied)
}
