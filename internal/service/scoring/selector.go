package scoring

import (
	"strings"

	"github.com/sandevgo/sagebot/internal/core"
)

const (
	selectionFloor         = 10.0
	selectionMaxConfidence = 0.95
	fallbackConfidence     = 0.1
)

// FallbackContent is the user-visible sentence when no generator produced
// anything usable.
const FallbackContent = "I'm currently unable to process your request. Please try again."

// HeuristicProfile is the selection-time weight set: coarse points by source
// with bonuses for appropriate length, query-term overlap, tool-keyword
// presence and memory-backed methods, and a hard penalty for hedging.
type HeuristicProfile struct{}

func NewHeuristicProfile() *HeuristicProfile { return &HeuristicProfile{} }

func (p *HeuristicProfile) Name() string { return "heuristic" }

func (p *HeuristicProfile) Score(query string, c core.Candidate) float64 {
	score := 0.0

	switch c.Source {
	case core.SourceTool:
		score += 90
	case core.SourceRAG:
		score += 70
	case core.SourceDirectLLM:
		score += 65
	case core.SourceFallback:
		score += 10
	default:
		score += 50
	}

	content := c.Content
	if content != "" {
		words := wordCount(content)
		if c.Source == core.SourceTool {
			switch {
			case words >= 5 && words <= 50:
				score += 20
			case words < 5:
				score += 10
			default:
				score += min(float64(words)*0.3, 20)
			}
		} else {
			score += min(float64(words)*0.5, 20)
		}
	}

	if containsAny(strings.ToLower(content), hedgingPhrases) {
		score -= 40
	}

	score += termOverlapRatio(query, content) * 30

	if c.Source == core.SourceTool && containsAny(strings.ToLower(query), toolKeywords) {
		score += 25
	}

	if strings.Contains(c.Method, "memory") {
		score += 15
	}

	// Floor keeps comparisons well-defined: no candidate ever scores zero.
	return max(score, selectionFloor)
}

// Selector picks the best candidate under a profile and derives its
// confidence from the score.
type Selector struct {
	profile Profile
}

func NewSelector() *Selector {
	return &Selector{profile: NewHeuristicProfile()}
}

func NewSelectorWithProfile(profile Profile) *Selector {
	return &Selector{profile: profile}
}

// Select returns the maximum-scoring candidate, ties broken by iteration
// order. An empty list yields a synthetic fallback.
func (s *Selector) Select(query string, candidates []core.Candidate) core.Candidate {
	if len(candidates) == 0 {
		return core.Candidate{
			Content:    FallbackContent,
			Source:     core.SourceFallback,
			Confidence: fallbackConfidence,
		}
	}

	bestIdx := 0
	bestScore := s.profile.Score(query, candidates[0])
	for i := 1; i < len(candidates); i++ {
		score := s.profile.Score(query, candidates[i])
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	best := candidates[bestIdx]
	best.Confidence = min(bestScore/100, selectionMaxConfidence)
	return best
}
