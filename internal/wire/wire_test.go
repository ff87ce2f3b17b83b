package wire

import (
	"testing"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("price", " 12.50 ")
	require.NoError(t, err)
	assert.Equal(t, "12.5", d.String())

	d, err = ParseDecimal("price", "")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDecimal("price", "twelve")
	assert.True(t, apperror.IsValidation(err))

	d, err = ParseDecimal("price", "7.500")
	require.NoError(t, err, "trailing zeros do not add precision")
	assert.Equal(t, "7.5", d.String())
}

func TestParseDecimal_RejectsSubCentValues(t *testing.T) {
	for _, s := range []string{"1.005", "0.001", "-3.333"} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseDecimal("unit_price", s)
			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperror.MsgDecimalScale, appErr.MessageID)
			assert.Equal(t, "unit_price", appErr.Params["Field"])
		})
	}
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("shipment_date", "2024-03-01T16:00:00+07:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-01T09:00:00Z", FormatTime(got))

	got, err = ParseTime("shipment_date", "2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseTime("shipment_date", "04/03/2024")
	assert.True(t, apperror.IsValidation(err))

	assert.Empty(t, FormatTime(time.Time{}))
}
