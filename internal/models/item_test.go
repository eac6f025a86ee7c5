package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemTotalPrice(t *testing.T) {
	tax := 21.0
	zero := 0.0

	tests := []struct {
		name string
		item Item
		want float64
	}{
		{name: "no tax", item: Item{Price: 100}, want: 100},
		{name: "with tax", item: Item{Price: 100, Tax: &tax}, want: 121},
		{name: "zero tax", item: Item{Price: 100, Tax: &zero}, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.item.TotalPrice(), 0.0001)
		})
	}
}
