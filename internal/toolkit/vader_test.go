package toolkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaderAnalyzerPolarityScores(t *testing.T) {
	analyzer := NewVaderAnalyzer()

	tests := []struct {
		name string
		text string
		sign int // -1 negative, 0 near zero, 1 positive
	}{
		{"positive text", "I love this, it is wonderful and great", 1},
		{"negative text", "I hate this, it is terrible and awful", -1},
		{"neutral text", "The train departs at noon", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := analyzer.PolarityScores(tt.text)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, p.Compound, -1.0)
			assert.LessOrEqual(t, p.Compound, 1.0)

			switch tt.sign {
			case 1:
				assert.Greater(t, p.Compound, 0.05)
			case -1:
				assert.Less(t, p.Compound, -0.05)
			}
		})
	}
}

func TestVaderAnalyzerComponentsSumToOne(t *testing.T) {
	analyzer := NewVaderAnalyzer()

	p, err := analyzer.PolarityScores("The food was good but the service was slow.")
	require.NoError(t, err)

	assert.InDelta(t, 1.0, p.Positive+p.Negative+p.Neutral, 0.01)
}
