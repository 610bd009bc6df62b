package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClearingNumber(t *testing.T) {
	t.Run("four digits", func(t *testing.T) {
		c, err := NewClearingNumber(5000)
		require.NoError(t, err)
		assert.Equal(t, 5000, c.Main())
		assert.False(t, c.HasSortingDigit())
		assert.Equal(t, "5000", c.String())
		assert.Equal(t, "5000", c.Pretty())
		assert.Equal(t, 5000, c.Value())
	})

	t.Run("with sorting digit", func(t *testing.T) {
		c, err := NewClearingNumber(81299)
		require.NoError(t, err)
		assert.Equal(t, 8129, c.Main())
		d, ok := c.SortingDigit()
		assert.True(t, ok)
		assert.Equal(t, 9, d)
		assert.Equal(t, "81299", c.String())
		assert.Equal(t, "8129-9", c.Pretty())
		assert.Equal(t, 81299, c.Value())
	})

	t.Run("failing sorting digit", func(t *testing.T) {
		_, err := NewClearingNumber(12349)
		assert.ErrorIs(t, err, ErrInvalidClearingNumber)

		for d := 0; d <= 9; d++ {
			_, err := NewClearingNumber(81290 + d)
			if d == 9 {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidClearingNumber, "sorting digit %d", d)
			}
		}
	})

	t.Run("out of range", func(t *testing.T) {
		for _, n := range []int{-1, 0, 999, 100000, 812990} {
			_, err := NewClearingNumber(n)
			assert.ErrorIs(t, err, ErrInvalidClearingNumber, "n=%d", n)
		}
	})
}

func TestNewClearingNumber_AllFourDigitValues(t *testing.T) {
	for n := 1000; n <= 9999; n++ {
		c, err := NewClearingNumber(n)
		require.NoError(t, err, "n=%d", n)
		require.Equal(t, n, c.Main())
	}
}

func TestParseClearingNumber(t *testing.T) {
	c, err := ParseClearingNumber("3300")
	require.NoError(t, err)
	assert.Equal(t, 3300, c.Main())

	c, err = ParseClearingNumber("81299")
	require.NoError(t, err)
	assert.True(t, c.HasSortingDigit())

	for _, bad := range []string{"", "123", "0999", "01234", "123456", "12a4", "8129-9"} {
		_, err := ParseClearingNumber(bad)
		assert.ErrorIs(t, err, ErrInvalidClearingNumber, "input %q", bad)
	}
}

func TestAccountNumber(t *testing.T) {
	a, err := ParseAccountNumber("0433867116")
	require.NoError(t, err)
	assert.Equal(t, "0433867116", a.String())
	assert.Equal(t, 10, a.Len())
	assert.Equal(t, "00433867116", a.Padded(11))
	assert.Equal(t, "0433867116", a.Padded(7))

	a, err = NewAccountNumber(17)
	require.NoError(t, err)
	assert.Equal(t, "0000017", a.Padded(7))

	for _, bad := range []string{"", "1", "12 3", "１２"} {
		_, err := ParseAccountNumber(bad)
		assert.ErrorIs(t, err, ErrInvalidAccountNumber, "input %q", bad)
	}

	_, err = NewAccountNumber(-12)
	assert.ErrorIs(t, err, ErrInvalidAccountNumber)
	_, err = NewAccountNumber(7)
	assert.ErrorIs(t, err, ErrInvalidAccountNumber)
}
