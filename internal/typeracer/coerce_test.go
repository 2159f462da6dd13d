package typeracer

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceInt(t *testing.T) {
	v, err := coerce(kindInt, "12,345")
	require.NoError(t, err)
	assert.Equal(t, 12345, v.i)

	v, err = coerce(kindInt, "7")
	require.NoError(t, err)
	assert.Equal(t, 7, v.i)

	for _, raw := range []string{"12a45", "", ",", "-3", "+3", "1.5"} {
		_, err := coerce(kindInt, raw)
		assert.Error(t, err, "raw %q", raw)
	}
}

func TestCoerceIntOutOfRange(t *testing.T) {
	for _, raw := range []string{"18,446,744,073,709,551,615", "9,223,372,036,854,775,808"} {
		_, err := coerce(kindInt, raw)
		require.Error(t, err, "raw %q", raw)
		assert.ErrorIs(t, err, strconv.ErrRange)
	}
}

func TestCoerceFloat(t *testing.T) {
	v, err := coerce(kindFloat, "1,234.5")
	require.NoError(t, err)
	assert.Equal(t, 1234.5, v.f)

	v, err = coerce(kindFloat, "98")
	require.NoError(t, err)
	assert.Equal(t, 98.0, v.f)

	for _, raw := range []string{"12a45", "1.2.3", ""} {
		_, err := coerce(kindFloat, raw)
		assert.Error(t, err, "raw %q", raw)
	}
}

func TestCoerceText(t *testing.T) {
	v, err := coerce(kindText, "&quot;hello&quot;")
	require.NoError(t, err)
	assert.Equal(t, `"hello"`, v.s)

	v, err = coerce(kindText, "1,234 &amp; more")
	require.NoError(t, err)
	assert.Equal(t, "1,234 &amp; more", v.s)
}
