package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	for in, want := range map[string]string{
		"a@x.com":       "a@x.com",
		" B@X.Com ":     "b@x.com",
		"MiXeD@City.BD": "mixed@city.bd",
		"":              "",
	} {
		assert.Equal(t, want, NormalizeEmail(in), in)
	}
}
