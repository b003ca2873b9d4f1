package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winematch/backend/internal/domain"
)

func TestNewPairClassifier(t *testing.T) {
	t.Run("no judge selects the algorithmic strategy", func(t *testing.T) {
		c := NewPairClassifier(nil, time.Second)
		assert.IsType(t, AlgorithmicClassifier{}, c)
	})

	t.Run("judge selects the judge strategy with default timeout", func(t *testing.T) {
		c := NewPairClassifier(&fakeJudge{}, 0)
		require.IsType(t, &JudgeClassifier{}, c)
		assert.Equal(t, defaultJudgeTimeout, c.(*JudgeClassifier).timeout)
	})
}

func TestJudgeClassifier(t *testing.T) {
	ctx := context.Background()
	fallback := FallbackVerdict("Casa del Valle Red Blend", "Casa del Valle Shiraz")

	testCases := []struct {
		name         string
		judge        *fakeJudge
		wantVerdict  domain.MatchVerdict
		wantFallback bool
	}{
		{
			name:  "valid response",
			judge: &fakeJudge{response: `{"is_match": false, "confidence_score": 25, "match_type": "different", "reasoning": "blend versus varietal"}`},
			wantVerdict: domain.MatchVerdict{
				IsMatch:    false,
				Confidence: 25,
				Type:       domain.MatchDifferent,
				Reasoning:  "blend versus varietal",
				Provenance: domain.ProvenanceJudge,
			},
		},
		{
			name:  "fenced response",
			judge: &fakeJudge{response: "```json\n{\"is_match\": true, \"confidence_score\": 92, \"match_type\": \"Exact\", \"reasoning\": \"same\"}\n```"},
			wantVerdict: domain.MatchVerdict{
				IsMatch:    true,
				Confidence: 92,
				Type:       domain.MatchExact,
				Reasoning:  "same",
				Provenance: domain.ProvenanceJudge,
			},
		},
		{
			name:         "judge error",
			judge:        &fakeJudge{err: errors.New("503 overloaded")},
			wantFallback: true,
		},
		{
			name:         "not json",
			judge:        &fakeJudge{response: "They look like the same wine to me."},
			wantFallback: true,
		},
		{
			name:         "missing reasoning",
			judge:        &fakeJudge{response: `{"is_match": true, "confidence_score": 95, "match_type": "exact"}`},
			wantFallback: true,
		},
		{
			name:         "confidence out of range",
			judge:        &fakeJudge{response: `{"is_match": true, "confidence_score": 120, "match_type": "exact", "reasoning": "x"}`},
			wantFallback: true,
		},
		{
			name:         "unknown label",
			judge:        &fakeJudge{response: `{"is_match": true, "confidence_score": 80, "match_type": "likely", "reasoning": "x"}`},
			wantFallback: true,
		},
		{
			name:         "timeout",
			judge:        &fakeJudge{block: true},
			wantFallback: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewPairClassifier(tc.judge, 50*time.Millisecond)

			got := c.ClassifyPair(ctx, "Casa del Valle Red Blend", "Casa del Valle Shiraz", nil)

			if tc.wantFallback {
				assert.Equal(t, fallback, got)
			} else {
				assert.Equal(t, tc.wantVerdict, got)
			}
			assert.Equal(t, 1, tc.judge.calls(), "judge must be called exactly once")
		})
	}
}

func TestJudgeClassifierSkipsJudgeForEmptyNames(t *testing.T) {
	judge := &fakeJudge{response: `{}`}
	c := NewPairClassifier(judge, time.Second)

	got := c.ClassifyPair(context.Background(), "", "Chablis", nil)
	assert.Equal(t, domain.MatchDifferent, got.Type)
	assert.Zero(t, got.Confidence)
	assert.Zero(t, judge.calls())
}

func TestAlgorithmicClassifierFallbackScenario(t *testing.T) {
	got := AlgorithmicClassifier{}.ClassifyPair(context.Background(), "Casa del Valle Red Blend", "Casa del Valle Shiraz", nil)

	assert.Equal(t, domain.ProvenanceFallback, got.Provenance)
	assert.Equal(t, similarityLabel(got.Confidence), got.Type)
	assert.Equal(t, domain.MatchPartial, got.Type)
}

func TestBuildMatchPrompt(t *testing.T) {
	prompt := BuildMatchPrompt("Wine A", "Wine B", &domain.PairContext{Rating: 4.2, Country: "Chile"})

	assert.Contains(t, prompt, `"Wine A"`)
	assert.Contains(t, prompt, `"Wine B"`)
	assert.Contains(t, prompt, "Source rating: 4.2/5")
	assert.Contains(t, prompt, "Country: Chile")
	assert.Contains(t, prompt, `"confidence_score"`)

	bare := BuildMatchPrompt("Wine A", "Wine B", nil)
	assert.Contains(t, bare, "No additional context available")
}

func TestParseJudgeVerdictErrors(t *testing.T) {
	_, err := ParseJudgeVerdict(`{"is_match": null, "confidence_score": 50, "match_type": "uncertain", "reasoning": ""}`)
	assert.ErrorIs(t, err, domain.ErrJudgeResponse)

	_, err = ParseJudgeVerdict("")
	assert.ErrorIs(t, err, domain.ErrJudgeResponse)
}

func TestStripCodeFence(t *testing.T) {
	testCases := []struct{ raw, want string }{
		{raw: `{"a":1}`, want: `{"a":1}`},
		{raw: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{raw: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{raw: "```json {\"a\":1}```", want: `{"a":1}`},
		{raw: "  ```{\"a\":1}```  ", want: `{"a":1}`},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, stripCodeFence(tc.raw), "stripCodeFence(%q)", tc.raw)
	}
}
