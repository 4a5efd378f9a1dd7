package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInit_Level(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	Init("debug", false)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	Init("warn", true)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	Init("nonsense", false)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	Init("", false)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
