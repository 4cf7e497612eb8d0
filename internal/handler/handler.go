// Package handler provides the Lambda handlers for S3 upload notifications.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"

	"github.com/pricofy/comprehend-s3/internal/domain"
	"github.com/pricofy/comprehend-s3/internal/storage"
)

// ObjectOpener fetches object bodies.
type ObjectOpener interface {
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// Analyzer turns a text into an analysis.
type Analyzer interface {
	Run(ctx context.Context, text string) (*domain.Analysis, error)
}

// Saver persists the analysis of an input object.
type Saver interface {
	Save(ctx context.Context, bucket, key string, analysis *domain.Analysis) error
}

// Handler processes the records of a notification one after another.
// Collaborators that a variant does not need may be nil.
type Handler struct {
	objects  ObjectOpener
	analyzer Analyzer
	saver    Saver
	stdout   io.Writer
	log      *slog.Logger
}

// Deps are the collaborators of a Handler.
type Deps struct {
	Objects  ObjectOpener
	Analyzer Analyzer
	Saver    Saver
	Stdout   io.Writer
	Log      *slog.Logger
}

// New creates a Handler.
func New(deps Deps) *Handler {
	return &Handler{
		objects:  deps.Objects,
		analyzer: deps.Analyzer,
		saver:    deps.Saver,
		stdout:   deps.Stdout,
		log:      deps.Log,
	}
}

// Greet returns the greeting without touching the event.
func (h *Handler) Greet(_ context.Context, _ json.RawMessage) (domain.Message, error) {
	return domain.Message{Message: domain.Greeting}, nil
}

// Dump prints the text of every referenced object.
func (h *Handler) Dump(ctx context.Context, event events.S3Event) (domain.Message, error) {
	for _, record := range domain.RecordsFromEvent(event) {
		text, err := h.readText(ctx, record)
		if err != nil {
			return domain.Message{}, err
		}
		if _, err := fmt.Fprintln(h.stdout, text); err != nil {
			return domain.Message{}, errors.Wrapf(err, "failed to print %s", uri(record))
		}
	}
	return domain.Message{Message: domain.Greeting}, nil
}

// Analyze runs the analysis over every record in order.
// The first failure aborts the batch and no results are returned.
func (h *Handler) Analyze(ctx context.Context, event events.S3Event) ([]*domain.Analysis, error) {
	return h.analyzeAll(ctx, domain.RecordsFromEvent(event))
}

// AnalyzeAndSave analyzes every record, then saves each analysis.
// Results are paired with records by position.
func (h *Handler) AnalyzeAndSave(ctx context.Context, event events.S3Event) ([]*domain.Analysis, error) {
	records := domain.RecordsFromEvent(event)

	analyses, err := h.analyzeAll(ctx, records)
	if err != nil {
		return nil, err
	}

	for i, record := range records {
		if err := h.saver.Save(ctx, record.Bucket, record.Key, analyses[i]); err != nil {
			return nil, err
		}
	}
	return analyses, nil
}

func (h *Handler) analyzeAll(ctx context.Context, records []domain.Record) ([]*domain.Analysis, error) {
	analyses := make([]*domain.Analysis, 0, len(records))
	for _, record := range records {
		analysis, err := h.AnalyzeRecord(ctx, record)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}
	return analyses, nil
}

// AnalyzeRecord fetches one object and analyzes its text.
func (h *Handler) AnalyzeRecord(ctx context.Context, record domain.Record) (*domain.Analysis, error) {
	text, err := h.readText(ctx, record)
	if err != nil {
		return nil, err
	}
	return h.analyzer.Run(ctx, text)
}

// readText fetches and decodes an object. The body is closed on every path once opened.
func (h *Handler) readText(ctx context.Context, record domain.Record) (string, error) {
	h.log.InfoContext(ctx, "obtaining", slog.String("uri", uri(record)))
	body, err := h.objects.Open(ctx, record.Bucket, record.Key)
	if err != nil {
		return "", err
	}
	defer body.Close()

	text, err := storage.ReadText(body)
	if err != nil {
		return "", errors.Wrapf(err, "failed to decode %s", uri(record))
	}
	return text, nil
}

func uri(record domain.Record) string {
	return "s3://" + record.Bucket + "/" + record.Key
}
