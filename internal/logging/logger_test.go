package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { Init("estate", "info", nil) })

	var buf bytes.Buffer
	Init("estate-test", "debug", &buf)
	assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())

	Logger.WithField("entity", "property").Debug("created")
	out := buf.String()
	assert.Contains(t, out, "[estate-test] created")
	assert.Contains(t, out, "entity=property")
}

func TestInitFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { Init("estate", "info", nil) })

	var buf bytes.Buffer
	Init("estate-test", "loud", &buf)
	assert.Equal(t, logrus.InfoLevel, Logger.GetLevel())

	Init("estate-test", "", &buf)
	assert.Equal(t, logrus.InfoLevel, Logger.GetLevel())
}

func TestInitDoesNotStackHooks(t *testing.T) {
	t.Cleanup(func() { Init("estate", "info", nil) })

	var buf bytes.Buffer
	Init("a", "info", &buf)
	Init("b", "info", &buf)
	Logger.Info("hello")
	assert.Contains(t, buf.String(), "[b] hello")
	assert.NotContains(t, buf.String(), "[a]")
}
