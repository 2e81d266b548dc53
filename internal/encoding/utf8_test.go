package encoding_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/studiodesk/internal/encoding"
)

func TestReadAll(t *testing.T) {
	type testCase struct {
		name  string
		input []byte
		want  string
	}

	tests := []testCase{
		{
			name:  "UTF-8 Passthrough",
			input: []byte("Description;Amount\nCafé fit-out;1.500,00\n"),
			want:  "Description;Amount\nCafé fit-out;1.500,00\n",
		},
		{
			name:  "UTF-8 BOM Stripped",
			input: append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date;Type\n")...),
			want:  "Date;Type\n",
		},
		{
			// "Café" with é = 0xE9 in Windows-1252.
			name:  "Windows-1252",
			input: []byte{'C', 'a', 'f', 0xE9, ';', '1', '\n'},
			want:  "Café;1\n",
		},
		{
			name:  "UTF-16LE",
			input: []byte{0xFF, 0xFE, 'O', 0x00, 'K', 0x00},
			want:  "OK",
		},
		{
			name:  "Empty",
			input: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encoding.ReadAll(bytes.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDetect(t *testing.T) {
	assert.Equal(t, encoding.CharsetUTF8, encoding.Detect([]byte(`{"projects":[]}`)))
	assert.Equal(t, encoding.CharsetUTF8BOM, encoding.Detect([]byte{0xEF, 0xBB, 0xBF, 'a'}))
	assert.Equal(t, encoding.CharsetUTF16BE, encoding.Detect([]byte{0xFE, 0xFF, 0x00, 'a'}))
}
