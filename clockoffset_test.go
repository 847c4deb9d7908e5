package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	conf := Config{interval: 1.0}
	assert.NoError(t, conf.validate())

	conf.interval = 0.25
	assert.NoError(t, conf.validate())

	conf.interval = 0
	assert.Error(t, conf.validate())

	conf.interval = -1
	assert.Error(t, conf.validate())

	// positive but truncates to a zero duration, which would panic the ticker
	conf.interval = 1e-10
	assert.Error(t, conf.validate())
}
