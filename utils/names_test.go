package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareNames(t *testing.T) {
	assert.True(t, CompareNames("Ravi Patel", "Ravi Patel"))
	assert.True(t, CompareNames("Ravi Patel", "DR RAVI PATEL"))
	assert.True(t, CompareNames("R. K. Patel", "Ravi Kumar Patel"))
	assert.True(t, CompareNames("Ravi Patel", "Patel Ravi"))
	assert.False(t, CompareNames("Ravi Patel", "Meena Desai"))
	assert.False(t, CompareNames("", "Meena Desai"))
}
