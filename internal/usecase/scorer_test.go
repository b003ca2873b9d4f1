package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreBounds(t *testing.T) {
	names := []string{
		"",
		"Château Margaux 2015",
		"Saint Clair Family Estate Sauvignon Blanc 2022",
		"Casa del Valle Red Blend",
		"Casa del Valle Shiraz",
		"Gran Marzoni Appassimento",
		"Whispering Angel Rosé",
		"Bodega Y Crianza",
		"19 Crimes",
		"!!!",
	}

	for _, a := range names {
		for _, b := range names {
			got := Score(a, b, "Casa del Valle", "Saint Clair Family Estate Ltd")
			if got < 0 || got > 100 {
				t.Errorf("Score(%q, %q) = %v, want within [0,100]", a, b, got)
			}
		}
	}
}

func TestScoreIdenticalNames(t *testing.T) {
	names := []string{
		"Château Margaux 2015",
		"Saint Clair Family Estate Sauvignon Blanc",
		"Casa del Valle Red Blend",
		"Bodega Y Crianza",
		"Pinot Grigio White",
		"Red",
	}

	for _, name := range names {
		if got := Score(name, name, "", ""); got < 90 {
			t.Errorf("Score(%q, %q) = %v, want >= 90", name, name, got)
		}
		if got := Score(name, name, "Saint Clair", "Saint Clair"); got < 90 {
			t.Errorf("Score(%q, %q) with winery = %v, want >= 90", name, name, got)
		}
	}
}

func TestScoreEmptyNames(t *testing.T) {
	assert.Zero(t, Score("", "Château Margaux", "", ""))
	assert.Zero(t, Score("Château Margaux", "", "", ""))
	assert.Zero(t, Score("2015", "Château Margaux", "", ""))
}

func TestScoreVetoes(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     string
		wantVeto string
	}{
		{
			name:     "disjoint grapes",
			a:        "Château X Vranec 2020",
			b:        "Château X Temjanika 2020",
			wantVeto: VetoGrape,
		},
		{
			name:     "grape veto despite identical producer text",
			a:        "Tikves Alexandria Cuvée Vranec Merlot",
			b:        "Tikves Alexandria Cuvée Chardonnay",
			wantVeto: VetoGrape,
		},
		{
			name:     "red against white",
			a:        "Santa Rita Red",
			b:        "Santa Rita White",
			wantVeto: VetoColor,
		},
		{
			name:     "translated color words",
			a:        "Château Musar Rouge",
			b:        "Château Musar Blanc",
			wantVeto: VetoColor,
		},
		{
			name:     "distinctive word missing",
			a:        "Bodega Y Crianza",
			b:        "Bodega Y Reserva",
			wantVeto: VetoDistinctive,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := defaultScorer.Explain(tc.a, tc.b, "", "")
			assert.Equal(t, tc.wantVeto, got.Veto)
			assert.Zero(t, got.Score)
		})
	}
}

func TestScoreSaintClairScenario(t *testing.T) {
	got := defaultScorer.Explain(
		"Saint Clair Family Estate Sauvignon Blanc 2022",
		"Saint Clair Sauvignon Blanc",
		"Saint Clair Family Estate",
		"Saint Clair Family Estate Ltd",
	)

	require.Equal(t, VetoNone, got.Veto)
	assert.GreaterOrEqual(t, got.Score, 75.0)
	assert.Equal(t, 25.0, got.ProducerPoints)
	assert.Equal(t, 25.0, got.WineryPoints)
	assert.InDelta(t, 40.0, got.CoveragePoints, 0.001)
	assert.InDelta(t, 90.0, got.Score, 0.001)
}

func TestScoreVintageOnlyDifference(t *testing.T) {
	got := Score("Château Margaux 2015", "Château Margaux 2018", "", "")
	assert.GreaterOrEqual(t, got, 90.0)
}

func TestScoreExtraTokenPenalty(t *testing.T) {
	plain := Score("Appassimento", "Appassimento Rosso", "", "")
	longer := Score("Appassimento", "Gran Marzoni Appassimento", "", "")

	assert.InDelta(t, 37.0, plain, 0.001)
	assert.InDelta(t, 34.0, longer, 0.001)
	assert.Greater(t, plain, longer)
}

func TestScoreAddedGrapePenalty(t *testing.T) {
	got := defaultScorer.Explain("Casa Valle Red Blend", "Casa Valle Shiraz", "", "")

	assert.Equal(t, 5.0, got.GrapePenalty)
	assert.Equal(t, 3.0, got.ExtraPenalty)
	assert.Equal(t, []string{"shiraz"}, got.ExtraTokens)
	assert.InDelta(t, 32.0, got.Score, 0.001)
}

func TestScoreShortWineryTokensGetNoBonus(t *testing.T) {
	got := defaultScorer.Explain("LA Cetto Nebbiolo", "Cetto Nebbiolo", "LA", "LA Wines")

	assert.Zero(t, got.ProducerPoints)
	assert.Zero(t, got.WineryPoints)
}

func TestScorerCustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.Coverage = 80
	s := NewScorer(w)

	got := s.Score("Appassimento", "Gran Marzoni Appassimento", "", "")
	assert.InDelta(t, 74.0, got, 0.001)
}
