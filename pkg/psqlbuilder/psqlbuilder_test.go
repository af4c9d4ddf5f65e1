package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("bookings").
		Where(squirrel.Eq{"apartment_id": 5}).
		Where(squirrel.Lt{"start_date": "2025-06-05"}).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM bookings WHERE apartment_id = $1 AND start_date < $2", query)
	assert.Equal(t, []interface{}{5, "2025-06-05"}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, _, err := Update("bookings").Set("status", "expired").Where(squirrel.Eq{"id": 1}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE bookings SET status = $1 WHERE id = $2", query)
}
