package scoring

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sandevgo/sagebot/internal/core"
)

const evaluationMethod = "multi_criteria"

// Composite blend weights.
const (
	weightRelevance    = 0.35
	weightCompleteness = 0.25
	weightCoherence    = 0.20
	weightSource       = 0.20
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// incompletenessPhrases halve the completeness score when present.
var incompletenessPhrases = []string{
	"i don't know", "i'm not sure", "i can't answer",
	"no information", "don't have enough",
}

var transitionWords = []string{
	"however", "therefore", "additionally", "furthermore", "consequently",
}

// Evaluation is the multi-criteria breakdown for a single candidate.
type Evaluation struct {
	Relevance    float64
	Completeness float64
	Coherence    float64
	SourceScore  float64
	Composite    float64
	Method       string
}

type ScoredCandidate struct {
	Index     int
	Candidate core.Candidate
	Scores    Evaluation
}

type EvaluationResult struct {
	Selected  core.Candidate
	AllScores []ScoredCandidate
	Reason    string
	Timestamp time.Time
}

type evaluationRecord struct {
	Query     string
	Result    EvaluationResult
	Timestamp time.Time
}

// CompositeProfile is the evaluation-time weight set: a [0,1] blend of
// relevance, completeness, coherence and source trust, discounted by the
// candidate's own stated confidence.
type CompositeProfile struct{}

func NewCompositeProfile() *CompositeProfile { return &CompositeProfile{} }

func (p *CompositeProfile) Name() string { return "composite" }

func (p *CompositeProfile) Score(query string, c core.Candidate) float64 {
	return p.Evaluate(query, c).Composite
}

func (p *CompositeProfile) Evaluate(query string, c core.Candidate) Evaluation {
	relevance := relevanceScore(query, c.Content)
	completeness := completenessScore(c.Content)
	coherence := coherenceScore(c.Content)
	source := sourceScore(c.Source)

	composite := relevance*weightRelevance +
		completeness*weightCompleteness +
		coherence*weightCoherence +
		source*weightSource

	confidence := c.Confidence
	if confidence == 0 {
		confidence = 0.5
	}
	composite *= confidence

	return Evaluation{
		Relevance:    relevance,
		Completeness: completeness,
		Coherence:    coherence,
		SourceScore:  source,
		Composite:    min(composite, 1.0),
		Method:       evaluationMethod,
	}
}

func relevanceScore(query, content string) float64 {
	if content == "" || query == "" {
		return 0
	}

	queryTerms := significantTerms(query)
	if len(queryTerms) == 0 {
		return 0.5
	}
	overlap := termOverlapRatio(query, content)

	queryComplexity := wordCount(query)
	responseLength := wordCount(content)

	var lengthScore float64
	if queryComplexity <= 5 {
		switch {
		case responseLength < 5:
			lengthScore = 0.3
		case responseLength > 100:
			lengthScore = 0.7
		default:
			lengthScore = 1.0
		}
	} else {
		switch {
		case responseLength < 10:
			lengthScore = 0.2
		case responseLength > 200:
			lengthScore = 0.8
		default:
			lengthScore = 1.0
		}
	}

	return overlap*0.7 + lengthScore*0.3
}

func completenessScore(content string) float64 {
	if content == "" {
		return 0
	}

	words := wordCount(content)
	sentences := sentenceSplitRe.Split(content, -1)

	wordScore := min(float64(words)/50, 1.0)
	sentenceScore := min(float64(len(sentences))/3, 1.0)

	score := wordScore*0.6 + sentenceScore*0.4
	if containsAny(strings.ToLower(content), incompletenessPhrases) {
		score *= 0.5
	}
	return score
}

func coherenceScore(content string) float64 {
	if content == "" {
		return 0
	}

	sentences := sentenceSplitRe.Split(content, -1)
	totalWords := 0
	for _, sentence := range sentences {
		totalWords += wordCount(sentence)
	}
	avgLength := float64(totalWords) / float64(max(len(sentences), 1))

	var structureScore float64
	switch {
	case avgLength >= 8 && avgLength <= 20:
		structureScore = 1.0
	case avgLength >= 5 && avgLength <= 25:
		structureScore = 0.8
	default:
		structureScore = 0.5
	}

	lower := strings.ToLower(content)
	transitions := 0
	for _, word := range transitionWords {
		if strings.Contains(lower, word) {
			transitions++
		}
	}
	transitionScore := min(float64(transitions)/3, 1.0)

	return structureScore*0.7 + transitionScore*0.3
}

func sourceScore(source core.Source) float64 {
	switch source {
	case core.SourceTool:
		return 0.9
	case core.SourceReact:
		return 0.85
	case core.SourceRAG:
		return 0.8
	case core.SourceDirectLLM:
		return 0.7
	case core.SourceFallback:
		return 0.3
	case core.SourceError:
		return 0.1
	default:
		return 0.5
	}
}

// Evaluator applies the composite profile across candidate lists and keeps
// an in-memory audit trail of decisions.
type Evaluator struct {
	profile *CompositeProfile
	history []evaluationRecord

	// historyLimit caps the audit trail; 0 means unbounded.
	historyLimit int
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		profile:      NewCompositeProfile(),
		historyLimit: 1000,
	}
}

func (e *Evaluator) Evaluate(query string, candidates []core.Candidate) EvaluationResult {
	if len(candidates) == 0 {
		result := EvaluationResult{
			Selected: core.Candidate{
				Content:    "No responses were generated.",
				Source:     core.SourceError,
				Confidence: 0,
			},
			Reason:    "no_responses",
			Timestamp: time.Now(),
		}
		e.record(query, result)
		return result
	}

	scores := make([]ScoredCandidate, 0, len(candidates))
	bestIdx := 0
	for i, c := range candidates {
		eval := e.profile.Evaluate(query, c)
		scores = append(scores, ScoredCandidate{Index: i, Candidate: c, Scores: eval})
		if eval.Composite > scores[bestIdx].Scores.Composite {
			bestIdx = i
		}
	}

	best := scores[bestIdx]
	result := EvaluationResult{
		Selected:  best.Candidate,
		AllScores: scores,
		Reason:    fmt.Sprintf("Highest composite score: %.3f", best.Scores.Composite),
		Timestamp: time.Now(),
	}
	e.record(query, result)
	return result
}

func (e *Evaluator) record(query string, result EvaluationResult) {
	e.history = append(e.history, evaluationRecord{
		Query:     query,
		Result:    result,
		Timestamp: time.Now(),
	})
	if e.historyLimit > 0 && len(e.history) > e.historyLimit {
		e.history = e.history[len(e.history)-e.historyLimit:]
	}
}

// History returns the most recent evaluations, oldest first.
func (e *Evaluator) History(limit int) []EvaluationResult {
	start := len(e.history) - limit
	if limit <= 0 || start < 0 {
		start = 0
	}
	out := make([]EvaluationResult, 0, len(e.history)-start)
	for _, rec := range e.history[start:] {
		out = append(out, rec.Result)
	}
	return out
}
