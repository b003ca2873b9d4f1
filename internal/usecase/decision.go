package usecase

import "github.com/winematch/backend/internal/domain"

// DecisionPolicy turns a confidence into accept or reject
type DecisionPolicy struct {
	Threshold float64
}

// NewDecisionPolicy creates a policy accepting confidences at or above threshold
func NewDecisionPolicy(threshold float64) DecisionPolicy {
	return DecisionPolicy{Threshold: threshold}
}

// Decide accepts iff confidence >= threshold. Rejection is a normal outcome, not an error.
func (p DecisionPolicy) Decide(confidence float64) domain.Decision {
	if confidence >= p.Threshold {
		return domain.DecisionAccept
	}
	return domain.DecisionReject
}

// DecideVerdict applies the policy to a verdict's confidence
func (p DecisionPolicy) DecideVerdict(v domain.MatchVerdict) domain.Decision {
	return p.Decide(v.Confidence)
}

// DecideCandidate applies the policy to a candidate's raw score; no candidate is a rejection.
// Packaging adjustments only rank candidates and never decide acceptance.
func (p DecisionPolicy) DecideCandidate(c *domain.MatchCandidate) domain.Decision {
	if c == nil {
		return domain.DecisionReject
	}
	return p.Decide(c.Score)
}
