// Package analysis runs the ordered Comprehend steps over a text.
package analysis

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/pricofy/comprehend-s3/internal/domain"
)

// ErrNoLanguage is returned when language detection yields no candidate.
var ErrNoLanguage = errors.New("no dominant language detected")

// Detector is the text analytics service.
// Every step except language detection needs the language of the text.
type Detector interface {
	DetectDominantLanguage(ctx context.Context, text string) ([]domain.DominantLanguage, error)
	DetectEntities(ctx context.Context, text, languageCode string) ([]domain.Entity, error)
	DetectKeyPhrases(ctx context.Context, text, languageCode string) ([]domain.KeyPhrase, error)
	DetectSentiment(ctx context.Context, text, languageCode string) (domain.Sentiment, error)
	DetectSyntax(ctx context.Context, text, languageCode string) ([]domain.SyntaxToken, error)
}

// Pipeline runs the five detection steps in order.
type Pipeline struct {
	detector Detector
	log      *slog.Logger
}

// NewPipeline creates a Pipeline.
func NewPipeline(detector Detector, log *slog.Logger) *Pipeline {
	return &Pipeline{detector: detector, log: log}
}

// SelectDominant returns the candidate with the highest score.
// The service documents no ordering, so candidates are sorted here; the first
// of equally scored candidates wins.
func SelectDominant(candidates []domain.DominantLanguage) (domain.DominantLanguage, error) {
	if len(candidates) == 0 {
		return domain.DominantLanguage{}, ErrNoLanguage
	}

	sorted := make([]domain.DominantLanguage, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	return sorted[0], nil
}

// Run analyzes text. The first failing step aborts the run.
func (p *Pipeline) Run(ctx context.Context, text string) (*domain.Analysis, error) {
	p.log.DebugContext(ctx, "input", slog.String("text", text))

	p.log.InfoContext(ctx, "detecting dominant language")
	candidates, err := p.detector.DetectDominantLanguage(ctx, text)
	if err != nil {
		return nil, err
	}
	dominant, err := SelectDominant(candidates)
	if err != nil {
		return nil, err
	}
	p.log.DebugContext(ctx, "language",
		slog.String("code", dominant.LanguageCode),
		slog.Float64("score", float64(dominant.Score)))

	// Later steps depend on the detected language.
	languageCode := dominant.LanguageCode

	p.log.InfoContext(ctx, "detecting entities")
	entities, err := p.detector.DetectEntities(ctx, text, languageCode)
	if err != nil {
		return nil, err
	}
	for _, e := range entities {
		p.log.DebugContext(ctx, "entity", slog.String("type", e.Type), slog.String("text", e.Text))
	}

	p.log.InfoContext(ctx, "detecting key phrases")
	phrases, err := p.detector.DetectKeyPhrases(ctx, text, languageCode)
	if err != nil {
		return nil, err
	}
	for _, kp := range phrases {
		p.log.DebugContext(ctx, "key phrase",
			slog.String("text", kp.Text),
			slog.Float64("score", float64(kp.Score)))
	}

	p.log.InfoContext(ctx, "detecting sentiment")
	sentiment, err := p.detector.DetectSentiment(ctx, text, languageCode)
	if err != nil {
		return nil, err
	}
	p.log.DebugContext(ctx, "sentiment",
		slog.String("sentiment", sentiment.Sentiment),
		slog.Float64("score", float64(sentiment.SentimentScore.For(sentiment.Sentiment))))

	p.log.InfoContext(ctx, "detecting syntax")
	tokens, err := p.detector.DetectSyntax(ctx, text, languageCode)
	if err != nil {
		return nil, err
	}
	for _, tok := range tokens {
		p.log.DebugContext(ctx, "token",
			slog.String("tag", tok.PartOfSpeech.Tag),
			slog.String("text", tok.Text),
			slog.Float64("score", float64(tok.PartOfSpeech.Score)))
	}

	return &domain.Analysis{
		DominantLanguage: dominant,
		Entities:         entities,
		KeyPhrases:       phrases,
		Sentiment:        sentiment,
		SyntaxTokens:     tokens,
	}, nil
}
