package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/winematch/backend/internal/domain"
)

// defaultJudgeTimeout bounds one judge call when no timeout is configured
const defaultJudgeTimeout = 15 * time.Second

// PairClassifier produces a verdict on whether two names are the same wine.
// Implementations never return an error: failures become fallback verdicts.
type PairClassifier interface {
	ClassifyPair(ctx context.Context, nameA, nameB string, pc *domain.PairContext) domain.MatchVerdict
}

// NewPairClassifier picks the strategy once: the algorithmic classifier when no
// judge is configured, otherwise the judge with the algorithmic fallback.
func NewPairClassifier(judge domain.SemanticJudge, timeout time.Duration) PairClassifier {
	if judge == nil {
		return AlgorithmicClassifier{}
	}
	if timeout <= 0 {
		timeout = defaultJudgeTimeout
	}
	return &JudgeClassifier{judge: judge, timeout: timeout}
}

// AlgorithmicClassifier compares names by string similarity only
type AlgorithmicClassifier struct{}

// ClassifyPair returns the deterministic similarity verdict
func (AlgorithmicClassifier) ClassifyPair(_ context.Context, nameA, nameB string, _ *domain.PairContext) domain.MatchVerdict {
	return FallbackVerdict(nameA, nameB)
}

// JudgeClassifier asks the semantic judge and falls back to string similarity
// when the call fails or the answer breaks the verdict contract
type JudgeClassifier struct {
	judge   domain.SemanticJudge
	timeout time.Duration
}

// ClassifyPair makes at most one judge call, bounded by the classifier's own timeout
func (c *JudgeClassifier) ClassifyPair(ctx context.Context, nameA, nameB string, pc *domain.PairContext) domain.MatchVerdict {
	if strings.TrimSpace(nameA) == "" || strings.TrimSpace(nameB) == "" {
		return FallbackVerdict(nameA, nameB)
	}

	log := zap.L().With(zap.String("nameA", nameA), zap.String("nameB", nameB))

	judgeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.judge.Judge(judgeCtx, BuildMatchPrompt(nameA, nameB, pc))
	if err != nil {
		log.Warn("semantic judge failed, using fallback", zap.Error(err))
		return FallbackVerdict(nameA, nameB)
	}

	verdict, err := ParseJudgeVerdict(raw)
	if err != nil {
		log.Warn("semantic judge response rejected, using fallback",
			zap.Error(err),
			zap.String("raw", raw),
		)
		return FallbackVerdict(nameA, nameB)
	}

	log.Debug("semantic judge verdict",
		zap.Float64("confidence", verdict.Confidence),
		zap.String("matchType", string(verdict.Type)),
	)
	return verdict
}
