package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/winematch/backend/internal/domain"
)

func TestFallbackStyle(t *testing.T) {
	testCases := []struct {
		style          string
		want           domain.WineStyle
		wantConfidence float64
	}{
		{"Spanish Rioja Red", domain.StyleRed, 80},
		{"Portuguese Douro Red", domain.StyleRed, 80},
		{"Bordeaux Rouge", domain.StyleRed, 80},
		{"Nya Zeeland Sauvignon Blanc", domain.StyleWhite, 80},
		{"German Riesling", domain.StyleWhite, 80},
		{"Provence Rosé", domain.StyleRose, 85},
		{"French Champagne", domain.StyleSparkling, 85},
		{"Italian Prosecco", domain.StyleSparkling, 85},
		{"Tawny Port", domain.StyleFortified, 80},
		{"Sauternes", domain.StyleDessert, 75},
		{"Portuguese Vinho", domain.StyleUnknown, 50},
	}

	for _, tc := range testCases {
		t.Run(tc.style, func(t *testing.T) {
			got := fallbackStyle(tc.style)
			assert.Equal(t, tc.want, got.Style)
			assert.Equal(t, tc.wantConfidence, got.Confidence)
			assert.Equal(t, tc.style, got.Original)
			assert.Equal(t, domain.ProvenanceFallback, got.Provenance)
		})
	}
}

func TestStyleSimplifier(t *testing.T) {
	ctx := context.Background()

	t.Run("empty style is unknown with full confidence", func(t *testing.T) {
		judge := &fakeJudge{}
		got := NewStyleSimplifier(judge, time.Second).Simplify(ctx, " ")
		assert.Equal(t, domain.StyleUnknown, got.Style)
		assert.Equal(t, 100.0, got.Confidence)
		assert.Zero(t, judge.calls())
	})

	t.Run("no judge uses keywords", func(t *testing.T) {
		got := NewStyleSimplifier(nil, 0).Simplify(ctx, "Spanish Rioja Red")
		assert.Equal(t, domain.StyleRed, got.Style)
		assert.Equal(t, domain.ProvenanceFallback, got.Provenance)
	})

	t.Run("judge answer is used", func(t *testing.T) {
		judge := &fakeJudge{response: `{"simplified_style": "Sparkling Wine", "confidence_score": 97, "reasoning": "cava"}`}
		got := NewStyleSimplifier(judge, time.Second).Simplify(ctx, "Spanish Cava Brut")
		assert.Equal(t, domain.StyleSparkling, got.Style)
		assert.Equal(t, 97.0, got.Confidence)
		assert.Equal(t, domain.ProvenanceJudge, got.Provenance)
		assert.Equal(t, "Spanish Cava Brut", got.Original)
	})

	t.Run("unknown judge category falls back", func(t *testing.T) {
		judge := &fakeJudge{response: `{"simplified_style": "Orange Wine", "confidence_score": 90, "reasoning": "skin contact"}`}
		got := NewStyleSimplifier(judge, time.Second).Simplify(ctx, "Georgian Amber White")
		assert.Equal(t, domain.StyleWhite, got.Style)
		assert.Equal(t, domain.ProvenanceFallback, got.Provenance)
	})

	t.Run("judge error falls back", func(t *testing.T) {
		judge := &fakeJudge{err: errors.New("timeout")}
		got := NewStyleSimplifier(judge, time.Second).Simplify(ctx, "French Champagne")
		assert.Equal(t, domain.StyleSparkling, got.Style)
		assert.Equal(t, domain.ProvenanceFallback, got.Provenance)
	})
}

func TestDetermineStyle(t *testing.T) {
	assert.Equal(t, domain.StyleRed, DetermineStyle("Château Musar Rouge 2015"))
	assert.Equal(t, domain.StyleWhite, DetermineStyle("Cloudy Bay Sauvignon Blanc"))
	assert.Equal(t, domain.StyleSparkling, DetermineStyle("Freixenet Cava Brut"))
	assert.Equal(t, domain.StyleUnknown, DetermineStyle("Château Margaux"))
}

func TestCategoryStyle(t *testing.T) {
	assert.Equal(t, domain.StyleRed, CategoryStyle("Rött vin"))
	assert.Equal(t, domain.StyleWhite, CategoryStyle("Vitt vin"))
	assert.Equal(t, domain.StyleRose, CategoryStyle("Rosévin"))
	assert.Equal(t, domain.StyleSparkling, CategoryStyle("Mousserande vin"))
	assert.Equal(t, domain.StyleUnknown, CategoryStyle(""))
}
