package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMemUsage(t *testing.T) {
	attr := GetMemUsage()
	assert.Equal(t, "mem", attr.Key)
	assert.Len(t, attr.Value.Group(), 4)
}
