package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSetLineQuantityReplacesOutright(t *testing.T) {
	cart := NewCart(1)

	cart.SetLineQuantity(10, 3, 50000)
	cart.SetLineQuantity(10, 5, 50000)

	require.Len(t, cart.Lines, 1)
	line, ok := cart.Line(10)
	require.True(t, ok)
	assert.Equal(t, 5, line.Quantity, "repeated updates must not accumulate")
	assert.Equal(t, int64(250000), line.Subtotal)
}

func TestCartSetLineQuantityRecomputesSubtotalFromCurrentPrice(t *testing.T) {
	cart := NewCart(1)

	cart.SetLineQuantity(10, 2, 50000)
	cart.SetLineQuantity(10, 2, 60000)

	line, ok := cart.Line(10)
	require.True(t, ok)
	assert.Equal(t, int64(120000), line.Subtotal)
}

func TestCartSetLineQuantityZeroRemovesLine(t *testing.T) {
	cart := NewCart(1)

	cart.SetLineQuantity(10, 2, 50000)
	cart.SetLineQuantity(10, 0, 50000)

	assert.Empty(t, cart.Lines)

	cart.SetLineQuantity(10, 2, 50000)
	cart.SetLineQuantity(10, -1, 50000)

	assert.Empty(t, cart.Lines)
}

func TestCartRemoveLineIsIdempotent(t *testing.T) {
	cart := NewCart(1)
	cart.SetLineQuantity(10, 2, 50000)
	cart.SetLineQuantity(20, 1, 30000)

	cart.RemoveLine(10)
	cart.RemoveLine(10)
	cart.RemoveLine(999)

	require.Len(t, cart.Lines, 1)
	_, ok := cart.Line(20)
	assert.True(t, ok)
}

func TestCartHoldsIndependentLines(t *testing.T) {
	cart := NewCart(1)
	cart.SetLineQuantity(10, 2, 50000)
	cart.SetLineQuantity(20, 1, 30000)

	cart.SetLineQuantity(10, 4, 50000)

	first, _ := cart.Line(10)
	second, _ := cart.Line(20)
	assert.Equal(t, 4, first.Quantity)
	assert.Equal(t, 1, second.Quantity)
	assert.Equal(t, int64(30000), second.Subtotal)
}
