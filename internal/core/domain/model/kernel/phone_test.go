package kernel_test

import (
	"testing"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhone_Normalization(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		countryCode string
		want        string
	}{
		{"empty input yields zero phone", "", "92", ""},
		{"non digit garbage yields zero phone", "abc-+()", "92", ""},
		{"leading zero replaced by country code", "03001234567", "92", "923001234567"},
		{"already prefixed with country code kept", "923001234567", "92", "923001234567"},
		{"plus and spaces stripped", "+92 300 1234567", "92", "923001234567"},
		{"short number gets country code prefixed", "3001234567", "92", "923001234567"},
		{"very short number gets country code prefixed", "12345", "92", "9212345"},
		{"long foreign number passes through", "13001234567890", "92", "13001234567890"},
		{"different country code", "0171234567", "49", "49171234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kernel.NewPhone(tt.raw, tt.countryCode)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewPhone_Idempotent(t *testing.T) {
	inputs := []string{
		"03001234567",
		"923001234567",
		"+92-300-1234567",
		"3001234567",
		"12345",
		"13001234567890",
		"",
	}

	for _, raw := range inputs {
		once := kernel.NewPhone(raw, "92")
		twice := kernel.NewPhone(once.String(), "92")
		assert.Equal(t, once.String(), twice.String(), "normalize(normalize(%q)) changed", raw)
	}
}

func TestPhone_Validate(t *testing.T) {
	require.Error(t, kernel.Phone{}.Validate())
	require.ErrorIs(t, kernel.Phone{}.Validate(), kernel.ErrPhoneIsRequired)
	require.NoError(t, kernel.NewPhone("03001234567", "92").Validate())
}

func TestPhone_IsZeroAndIsEqual(t *testing.T) {
	assert.True(t, kernel.Phone{}.IsZero())
	assert.False(t, kernel.NewPhone("03001234567", "92").IsZero())

	a := kernel.NewPhone("03001234567", "92")
	b := kernel.NewPhone("+923001234567", "92")
	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(kernel.Phone{}))
}

func TestRestorePhone(t *testing.T) {
	p := kernel.RestorePhone("923001234567")
	assert.Equal(t, "923001234567", p.String())
	assert.True(t, kernel.RestorePhone("").IsZero())
}
