package practice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPremium(t *testing.T) {
	tests := []struct {
		name string
		lob  string
		age  int
		want float64
	}{
		{"auto with senior surcharge", "Auto", 60, 1500},
		{"health with youth surcharge", "Health", 20, 575},
		{"life base rate", "Life", 30, 300},
		{"unknown lob fallback", "Boat", 30, 1000},
		{"home with senior surcharge", "Home", 55, 1000},
		{"age 25 pays base rate", "Auto", 25, 1200},
		{"age 24 pays youth surcharge", "Auto", 24, 1380},
		{"age 50 pays base rate", "Auto", 50, 1200},
		{"age 51 pays senior surcharge", "Auto", 51, 1500},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Premium(tc.lob, tc.age))
		})
	}
}
