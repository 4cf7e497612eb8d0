package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/pricofy/comprehend-s3/internal/domain"
	"github.com/pricofy/comprehend-s3/internal/logging"
)

// recordingDetector returns canned results and records every call.
type recordingDetector struct {
	languages []domain.DominantLanguage
	failStep  string
	calls     []string
	codes     []string
}

var errDetect = errors.New("service unavailable")

func (d *recordingDetector) step(name, code string) error {
	d.calls = append(d.calls, name)
	if code != "" {
		d.codes = append(d.codes, code)
	}
	if d.failStep == name {
		return errDetect
	}
	return nil
}

func (d *recordingDetector) DetectDominantLanguage(_ context.Context, _ string) ([]domain.DominantLanguage, error) {
	if err := d.step("language", ""); err != nil {
		return nil, err
	}
	return d.languages, nil
}

func (d *recordingDetector) DetectEntities(_ context.Context, _, code string) ([]domain.Entity, error) {
	if err := d.step("entities", code); err != nil {
		return nil, err
	}
	return []domain.Entity{{Type: "LOCATION", Text: "Seattle", Score: 0.99, BeginOffset: 6, EndOffset: 13}}, nil
}

func (d *recordingDetector) DetectKeyPhrases(_ context.Context, _, code string) ([]domain.KeyPhrase, error) {
	if err := d.step("keyphrases", code); err != nil {
		return nil, err
	}
	return []domain.KeyPhrase{{Text: "Seattle", Score: 0.98}}, nil
}

func (d *recordingDetector) DetectSentiment(_ context.Context, _, code string) (domain.Sentiment, error) {
	if err := d.step("sentiment", code); err != nil {
		return domain.Sentiment{}, err
	}
	return domain.Sentiment{
		Sentiment:      "POSITIVE",
		SentimentScore: domain.SentimentScore{Positive: 0.9, Neutral: 0.1},
	}, nil
}

func (d *recordingDetector) DetectSyntax(_ context.Context, _, code string) ([]domain.SyntaxToken, error) {
	if err := d.step("syntax", code); err != nil {
		return nil, err
	}
	return []domain.SyntaxToken{{TokenId: 1, Text: "Hello", PartOfSpeech: domain.PartOfSpeech{Tag: "INTJ", Score: 0.97}}}, nil
}

func TestSelectDominant(t *testing.T) {
	tests := []struct {
		name       string
		candidates []domain.DominantLanguage
		expected   string
	}{
		{
			name:       "single candidate",
			candidates: []domain.DominantLanguage{{LanguageCode: "en", Score: 0.99}},
			expected:   "en",
		},
		{
			name: "highest score not first",
			candidates: []domain.DominantLanguage{
				{LanguageCode: "fr", Score: 0.12},
				{LanguageCode: "es", Score: 0.85},
				{LanguageCode: "it", Score: 0.03},
			},
			expected: "es",
		},
		{
			name: "tie keeps first occurrence",
			candidates: []domain.DominantLanguage{
				{LanguageCode: "pt", Score: 0.2},
				{LanguageCode: "gl", Score: 0.4},
				{LanguageCode: "es", Score: 0.4},
			},
			expected: "gl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectDominant(tt.candidates)
			if err != nil {
				t.Fatalf("SelectDominant() unexpected error: %v", err)
			}
			if got.LanguageCode != tt.expected {
				t.Errorf("SelectDominant() = %q, want %q", got.LanguageCode, tt.expected)
			}
		})
	}
}

func TestSelectDominant_DoesNotReorderInput(t *testing.T) {
	candidates := []domain.DominantLanguage{
		{LanguageCode: "fr", Score: 0.1},
		{LanguageCode: "en", Score: 0.9},
	}

	if _, err := SelectDominant(candidates); err != nil {
		t.Fatalf("SelectDominant() unexpected error: %v", err)
	}
	if candidates[0].LanguageCode != "fr" {
		t.Error("SelectDominant() should not reorder its input")
	}
}

func TestSelectDominant_Empty(t *testing.T) {
	if _, err := SelectDominant(nil); !errors.Is(err, ErrNoLanguage) {
		t.Errorf("SelectDominant(nil) error = %v, want %v", err, ErrNoLanguage)
	}
}

func TestPipelineRun(t *testing.T) {
	detector := &recordingDetector{languages: []domain.DominantLanguage{
		{LanguageCode: "de", Score: 0.3},
		{LanguageCode: "en", Score: 0.7},
	}}
	p := NewPipeline(detector, logging.Discard())

	result, err := p.Run(context.TODO(), "Hello Seattle")
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	expectedCalls := []string{"language", "entities", "keyphrases", "sentiment", "syntax"}
	if len(detector.calls) != len(expectedCalls) {
		t.Fatalf("Run() made calls %v, want %v", detector.calls, expectedCalls)
	}
	for i := range expectedCalls {
		if detector.calls[i] != expectedCalls[i] {
			t.Errorf("call %d = %q, want %q", i, detector.calls[i], expectedCalls[i])
		}
	}

	for i, code := range detector.codes {
		if code != "en" {
			t.Errorf("step %q used language %q, want %q", detector.calls[i+1], code, "en")
		}
	}

	if result.DominantLanguage.LanguageCode != "en" {
		t.Errorf("DominantLanguage = %q, want %q", result.DominantLanguage.LanguageCode, "en")
	}
	if len(result.Entities) != 1 || result.Entities[0].Text != "Seattle" {
		t.Errorf("Entities = %+v, want one Seattle entity", result.Entities)
	}
	if len(result.KeyPhrases) != 1 {
		t.Errorf("KeyPhrases = %+v, want one phrase", result.KeyPhrases)
	}
	if result.Sentiment.Sentiment != "POSITIVE" {
		t.Errorf("Sentiment = %q, want %q", result.Sentiment.Sentiment, "POSITIVE")
	}
	if len(result.SyntaxTokens) != 1 || result.SyntaxTokens[0].PartOfSpeech.Tag != "INTJ" {
		t.Errorf("SyntaxTokens = %+v, want one INTJ token", result.SyntaxTokens)
	}
}

func TestPipelineRun_StepFailure(t *testing.T) {
	steps := []string{"language", "entities", "keyphrases", "sentiment", "syntax"}

	for i, step := range steps {
		t.Run(step, func(t *testing.T) {
			detector := &recordingDetector{
				languages: []domain.DominantLanguage{{LanguageCode: "en", Score: 1}},
				failStep:  step,
			}
			p := NewPipeline(detector, logging.Discard())

			result, err := p.Run(context.TODO(), "text")
			if !errors.Is(err, errDetect) {
				t.Errorf("Run() error = %v, want %v", err, errDetect)
			}
			if result != nil {
				t.Errorf("Run() returned partial result %+v", result)
			}
			if len(detector.calls) != i+1 {
				t.Errorf("Run() made %d calls after failing at %q, want %d", len(detector.calls), step, i+1)
			}
		})
	}
}

func TestPipelineRun_NoLanguage(t *testing.T) {
	detector := &recordingDetector{}
	p := NewPipeline(detector, logging.Discard())

	if _, err := p.Run(context.TODO(), "text"); !errors.Is(err, ErrNoLanguage) {
		t.Errorf("Run() error = %v, want %v", err, ErrNoLanguage)
	}
	if len(detector.calls) != 1 {
		t.Errorf("Run() should stop after language detection, made calls %v", detector.calls)
	}
}
