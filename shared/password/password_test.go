package password_test

import (
	"salon/shared/password"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hashed, err := password.Hash("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hashed)

	assert.NoError(t, password.Verify("correct-horse", hashed))
	assert.ErrorIs(t, password.Verify("battery-staple", hashed), password.ErrMismatch)
}

func TestHash_Empty(t *testing.T) {
	_, err := password.Hash("")
	assert.ErrorIs(t, err, password.ErrEmptyPassword)
}

func TestVerify_MissingInput(t *testing.T) {
	tests := []struct {
		name  string
		plain string
		hash  string
	}{
		{name: "empty password", hash: "$2a$10$abc"},
		{name: "empty hash", plain: "correct-horse"},
		{name: "malformed hash", plain: "correct-horse", hash: "plain-text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, password.Verify(tt.plain, tt.hash))
		})
	}
}
