// Package domain contains the core domain types for the Comprehend S3 functions.
package domain

import (
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Greeting is the constant message returned by the variants without analysis output.
const Greeting = "hello world!"

// Message is the response of the greeting and dump functions.
type Message struct {
	Message string `json:"message"`
}

// Record identifies one uploaded object.
type Record struct {
	Bucket string
	Key    string
}

// RecordsFromEvent extracts the (bucket, key) pairs of an S3 notification in order.
// S3 URL-encodes object keys in notifications, so the decoded key is preferred.
func RecordsFromEvent(event events.S3Event) []Record {
	records := make([]Record, 0, len(event.Records))
	for _, r := range event.Records {
		key := r.S3.Object.URLDecodedKey
		if key == "" {
			key = r.S3.Object.Key
		}
		records = append(records, Record{Bucket: r.S3.Bucket.Name, Key: key})
	}
	return records
}

// Analysis is the combined result of the five Comprehend steps for one object.
type Analysis struct {
	DominantLanguage DominantLanguage `json:"DominantLanguage"`
	Entities         []Entity         `json:"Entities"`
	KeyPhrases       []KeyPhrase      `json:"KeyPhrases"`
	Sentiment        Sentiment        `json:"Sentiment"`
	SyntaxTokens     []SyntaxToken    `json:"SyntaxTokens"`
}

// DominantLanguage is a language candidate and its confidence.
type DominantLanguage struct {
	LanguageCode string  `json:"LanguageCode"`
	Score        float32 `json:"Score"`
}

// Entity is a named entity found in the text.
type Entity struct {
	Score       float32 `json:"Score"`
	Type        string  `json:"Type"`
	Text        string  `json:"Text"`
	BeginOffset int32   `json:"BeginOffset"`
	EndOffset   int32   `json:"EndOffset"`
}

// KeyPhrase is a key noun phrase found in the text.
type KeyPhrase struct {
	Score       float32 `json:"Score"`
	Text        string  `json:"Text"`
	BeginOffset int32   `json:"BeginOffset"`
	EndOffset   int32   `json:"EndOffset"`
}

// Sentiment is the overall sentiment label and its confidence distribution.
type Sentiment struct {
	Sentiment      string         `json:"Sentiment"`
	SentimentScore SentimentScore `json:"SentimentScore"`
}

// SentimentScore is the four-way confidence distribution of a sentiment.
type SentimentScore struct {
	Positive float32 `json:"Positive"`
	Negative float32 `json:"Negative"`
	Neutral  float32 `json:"Neutral"`
	Mixed    float32 `json:"Mixed"`
}

// For returns the score matching a sentiment label such as "POSITIVE".
// Unknown labels score 0.
func (s SentimentScore) For(label string) float32 {
	switch strings.ToUpper(label) {
	case "POSITIVE":
		return s.Positive
	case "NEGATIVE":
		return s.Negative
	case "NEUTRAL":
		return s.Neutral
	case "MIXED":
		return s.Mixed
	}
	return 0
}

// SyntaxToken is a word with its part of speech.
type SyntaxToken struct {
	TokenId      int32        `json:"TokenId"`
	Text         string       `json:"Text"`
	BeginOffset  int32        `json:"BeginOffset"`
	EndOffset    int32        `json:"EndOffset"`
	PartOfSpeech PartOfSpeech `json:"PartOfSpeech"`
}

// PartOfSpeech is the part-of-speech tag of a token and its confidence.
type PartOfSpeech struct {
	Tag   string  `json:"Tag"`
	Score float32 `json:"Score"`
}
