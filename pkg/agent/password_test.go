package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPassword_LiteralForms(t *testing.T) {
	for _, raw := range []string{
		`secret`,
		`pwd=secret`,
		`"secret"`,
		`{"new_password": "secret"}`,
		`  'secret'  `,
		`new_password = "secret"`,
		`a=b=secret`,
	} {
		t.Run(raw, func(t *testing.T) {
			got, err := CleanPassword(raw)
			require.NoError(t, err)
			assert.Equal(t, "secret", got)
		})
	}
}

func TestCleanPassword_FirstValueInDocumentOrder(t *testing.T) {
	got, err := CleanPassword(`{"zeta": "first", "alpha": "second"}`)
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	got, err = CleanPassword(`{"pin": 1234}`)
	require.NoError(t, err)
	assert.Equal(t, "1234", got)
}

func TestCleanPassword_InvalidJSONFallsThrough(t *testing.T) {
	got, err := CleanPassword(`{password=hunter2`)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
}

func TestCleanPassword_Idempotent(t *testing.T) {
	for _, s := range []string{"secret", "Passw0rd", "abc123XYZ", "x", "007"} {
		once, err := CleanPassword(s)
		require.NoError(t, err)
		twice, err := CleanPassword(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
		assert.Equal(t, s, once)
	}
}

func TestCleanPassword_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", `""`, "pwd=", `{"p": ""}`} {
		_, err := CleanPassword(raw)
		var inputErr *ToolInputError
		require.ErrorAs(t, err, &inputErr, raw)
		assert.Equal(t, msgEmptyPassword, inputErr.Message)
	}
}
