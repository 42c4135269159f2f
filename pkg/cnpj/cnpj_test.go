package cnpj_test

import (
	"sincromei/pkg/cnpj"
	"sincromei/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"well formed", "12345678000195", true},
		{"all zeros", "00000000000000", true},
		{"empty", "", false},
		{"too short", "123", false},
		{"thirteen digits", "1234567800019", false},
		{"fifteen digits", "123456780001950", false},
		{"letters", "1234567800019a", false},
		{"punctuation", "12.345.678/0001-95", false},
		{"leading space", " 12345678000195", false},
		{"trailing newline", "12345678000195\n", false},
		{"arabic-indic digits", "١٢٣٤٥٦٧٨٠٠٠١٩٥", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.valid, cnpj.IsValid(tt.input))

			err := cnpj.Validate(tt.input)
			if tt.valid {
				require.NoError(t, err)

				return
			}
			require.ErrorIs(t, err, serrors.ErrInvalidArgument)
			require.Equal(t, cnpj.InvalidFormatMessage, err.Error())
		})
	}
}
