// Package comprehend adapts the Amazon Comprehend API to the analysis pipeline.
package comprehend

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	"github.com/aws/aws-sdk-go-v2/service/comprehend/types"
	"github.com/pkg/errors"

	"github.com/pricofy/comprehend-s3/internal/analysis"
	"github.com/pricofy/comprehend-s3/internal/domain"
)

// API is the subset of the Comprehend client used by Client.
type API interface {
	DetectDominantLanguage(ctx context.Context, params *comprehend.DetectDominantLanguageInput, optFns ...func(*comprehend.Options)) (*comprehend.DetectDominantLanguageOutput, error)
	DetectEntities(ctx context.Context, params *comprehend.DetectEntitiesInput, optFns ...func(*comprehend.Options)) (*comprehend.DetectEntitiesOutput, error)
	DetectKeyPhrases(ctx context.Context, params *comprehend.DetectKeyPhrasesInput, optFns ...func(*comprehend.Options)) (*comprehend.DetectKeyPhrasesOutput, error)
	DetectSentiment(ctx context.Context, params *comprehend.DetectSentimentInput, optFns ...func(*comprehend.Options)) (*comprehend.DetectSentimentOutput, error)
	DetectSyntax(ctx context.Context, params *comprehend.DetectSyntaxInput, optFns ...func(*comprehend.Options)) (*comprehend.DetectSyntaxOutput, error)
}

var (
	_ API               = (*comprehend.Client)(nil)
	_ analysis.Detector = (*Client)(nil)
)

// Client implements analysis.Detector with Amazon Comprehend.
type Client struct {
	api API
}

// New creates a Client.
func New(api API) *Client {
	return &Client{api: api}
}

// DetectDominantLanguage returns every language candidate in service order.
func (c *Client) DetectDominantLanguage(ctx context.Context, text string) ([]domain.DominantLanguage, error) {
	out, err := c.api.DetectDominantLanguage(ctx, &comprehend.DetectDominantLanguageInput{
		Text: aws.String(text),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to detect dominant language")
	}

	languages := make([]domain.DominantLanguage, 0, len(out.Languages))
	for _, l := range out.Languages {
		languages = append(languages, domain.DominantLanguage{
			LanguageCode: aws.ToString(l.LanguageCode),
			Score:        aws.ToFloat32(l.Score),
		})
	}
	return languages, nil
}

func (c *Client) DetectEntities(ctx context.Context, text, languageCode string) ([]domain.Entity, error) {
	out, err := c.api.DetectEntities(ctx, &comprehend.DetectEntitiesInput{
		Text:         aws.String(text),
		LanguageCode: types.LanguageCode(languageCode),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to detect entities (language %s)", languageCode)
	}

	entities := make([]domain.Entity, 0, len(out.Entities))
	for _, e := range out.Entities {
		entities = append(entities, domain.Entity{
			Score:       aws.ToFloat32(e.Score),
			Type:        string(e.Type),
			Text:        aws.ToString(e.Text),
			BeginOffset: aws.ToInt32(e.BeginOffset),
			EndOffset:   aws.ToInt32(e.EndOffset),
		})
	}
	return entities, nil
}

func (c *Client) DetectKeyPhrases(ctx context.Context, text, languageCode string) ([]domain.KeyPhrase, error) {
	out, err := c.api.DetectKeyPhrases(ctx, &comprehend.DetectKeyPhrasesInput{
		Text:         aws.String(text),
		LanguageCode: types.LanguageCode(languageCode),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to detect key phrases (language %s)", languageCode)
	}

	phrases := make([]domain.KeyPhrase, 0, len(out.KeyPhrases))
	for _, kp := range out.KeyPhrases {
		phrases = append(phrases, domain.KeyPhrase{
			Score:       aws.ToFloat32(kp.Score),
			Text:        aws.ToString(kp.Text),
			BeginOffset: aws.ToInt32(kp.BeginOffset),
			EndOffset:   aws.ToInt32(kp.EndOffset),
		})
	}
	return phrases, nil
}

func (c *Client) DetectSentiment(ctx context.Context, text, languageCode string) (domain.Sentiment, error) {
	out, err := c.api.DetectSentiment(ctx, &comprehend.DetectSentimentInput{
		Text:         aws.String(text),
		LanguageCode: types.LanguageCode(languageCode),
	})
	if err != nil {
		return domain.Sentiment{}, errors.Wrapf(err, "failed to detect sentiment (language %s)", languageCode)
	}

	sentiment := domain.Sentiment{Sentiment: string(out.Sentiment)}
	if s := out.SentimentScore; s != nil {
		sentiment.SentimentScore = domain.SentimentScore{
			Positive: aws.ToFloat32(s.Positive),
			Negative: aws.ToFloat32(s.Negative),
			Neutral:  aws.ToFloat32(s.Neutral),
			Mixed:    aws.ToFloat32(s.Mixed),
		}
	}
	return sentiment, nil
}

// DetectSyntax uses the syntax language set, which is narrower than the other operations'.
func (c *Client) DetectSyntax(ctx context.Context, text, languageCode string) ([]domain.SyntaxToken, error) {
	out, err := c.api.DetectSyntax(ctx, &comprehend.DetectSyntaxInput{
		Text:         aws.String(text),
		LanguageCode: types.SyntaxLanguageCode(languageCode),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to detect syntax (language %s)", languageCode)
	}

	tokens := make([]domain.SyntaxToken, 0, len(out.SyntaxTokens))
	for _, tok := range out.SyntaxTokens {
		token := domain.SyntaxToken{
			TokenId:     aws.ToInt32(tok.TokenId),
			Text:        aws.ToString(tok.Text),
			BeginOffset: aws.ToInt32(tok.BeginOffset),
			EndOffset:   aws.ToInt32(tok.EndOffset),
		}
		if pos := tok.PartOfSpeech; pos != nil {
			token.PartOfSpeech = domain.PartOfSpeech{
				Tag:   string(pos.Tag),
				Score: aws.ToFloat32(pos.Score),
			}
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}
