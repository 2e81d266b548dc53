package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/studiodesk/internal/importer"
)

func TestService_Import(t *testing.T) {
	svc := importer.NewService()
	csv := "Date;Description;Amount;Paid\n01-02-2024;Deposit;100,00;100,00\n"

	params, err := svc.Import("", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, params, 1)

	_, err = svc.Import("cgd", strings.NewReader(csv))
	assert.ErrorIs(t, err, importer.ErrUnknownFormat)
}
