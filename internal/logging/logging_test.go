package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetLevel(t *testing.T) {
	defer Log.SetLevel(logrus.InfoLevel)

	tests := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"INFO":    logrus.InfoLevel,
		"":        logrus.InfoLevel,
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
	}
	for name, want := range tests {
		assert.NoError(t, SetLevel(name))
		assert.Equal(t, want, Log.GetLevel(), "level %q", name)
	}

	assert.Error(t, SetLevel("verbose"))
}

func TestSetJSON(t *testing.T) {
	defer SetJSON(false)

	SetJSON(true)
	_, ok := Log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)

	SetJSON(false)
	_, ok = Log.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok)
}
