package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Run("Missing Keys Use Defaults", func(t *testing.T) {
		assert.Equal(t, "fallback", GetEnvString("HMS_TEST_MISSING_STRING", "fallback"))
		assert.Equal(t, 7, GetEnvInt("HMS_TEST_MISSING_INT", 7))
		assert.True(t, GetEnvBool("HMS_TEST_MISSING_BOOL", true))
	})

	t.Run("Present Keys Are Parsed", func(t *testing.T) {
		t.Setenv("HMS_TEST_STRING", "redis")
		t.Setenv("HMS_TEST_INT", "42")
		t.Setenv("HMS_TEST_BOOL", "false")

		assert.Equal(t, "redis", GetEnvString("HMS_TEST_STRING", "memory"))
		assert.Equal(t, 42, GetEnvInt("HMS_TEST_INT", 1))
		assert.False(t, GetEnvBool("HMS_TEST_BOOL", true))
	})

	t.Run("Unparsable Values Fall Back", func(t *testing.T) {
		t.Setenv("HMS_TEST_BAD_INT", "ten")
		t.Setenv("HMS_TEST_BAD_BOOL", "maybe")

		assert.Equal(t, 10, GetEnvInt("HMS_TEST_BAD_INT", 10))
		assert.True(t, GetEnvBool("HMS_TEST_BAD_BOOL", true))
	})
}
