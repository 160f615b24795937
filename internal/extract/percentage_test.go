package extract

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPercentage(t *testing.T) {
	table := []struct {
		input    string
		expected *float64
	}{
		{input: "Grêmio 12,5%", expected: ptr(12.5)},
		{input: "probabilidade 0.37", expected: ptr(37.0)},
		{input: "sem dados", expected: nil},
		{input: "gremio 45.67 %", expected: ptr(45.67)},
		{input: "gremio 45.678 %", expected: nil},
		{input: "gremio 100%", expected: ptr(100.0)},
		{input: "gremio 0,5%", expected: ptr(0.5)},
		{input: "gremio 1", expected: ptr(100.0)},
		{input: "gremio 0", expected: ptr(0.0)},
		{input: "5 gremio 34", expected: ptr(5.0)},
		{input: "gremio 7 pontos, 12,25% de chance", expected: ptr(12.25)},
		{input: "ano 2025", expected: nil},
		{input: "1234%", expected: nil},
		{input: "gremio 250", expected: nil},
		{input: "", expected: nil},
		{input: "3 Grêmio 12,5\u00a0%", expected: ptr(12.5)},
		{input: "Grêmio 0,5\u00a0%", expected: ptr(0.5)},
		{input: "9 Grêmio 48\u202f%", expected: ptr(48.0)},
	}

	for _, row := range table {
		result := Percentage(row.input)
		if row.expected == nil {
			require.Nil(t, result, row.input)
			continue
		}
		require.NotNil(t, result, row.input)
		require.InDelta(t, *row.expected, *result, 1e-9, row.input)
	}
}

func TestPercentageAlwaysInRange(t *testing.T) {
	inputs := []string{"%", "999%", "0.001", ",5%", "1,999", "00.99", "abc 1.5 def"}
	for i := 0; i <= 1000; i += 7 {
		inputs = append(inputs, fmt.Sprintf("gremio %d", i), fmt.Sprintf("%d,%d%%", i, i%100))
	}

	for _, input := range inputs {
		result := Percentage(input)
		if result == nil {
			continue
		}
		require.GreaterOrEqual(t, *result, 0.0, input)
		require.LessOrEqual(t, *result, 100.0, input)
		require.Equal(t, math.Round(*result*100)/100, *result, input)
	}
}
