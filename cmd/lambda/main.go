// Package main is the entry point for the Lambda function that analyzes uploaded
// text with Amazon Comprehend and saves the results to S3.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/pricofy/comprehend-s3/internal/app"
	"github.com/pricofy/comprehend-s3/internal/domain"
	"github.com/pricofy/comprehend-s3/internal/invoke"
)

type analyzeFunc func(ctx context.Context, event events.S3Event) ([]*domain.Analysis, error)

// function routes warmup pings and S3 notifications.
type function struct {
	analyze analyzeFunc
	warmer  *Warmer
}

func main() {
	a, err := app.New(context.Background(), os.Getenv, os.Stdout, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fn := &function{
		analyze: a.Handler.AnalyzeAndSave,
		warmer:  NewWarmer(a.Clients.Lambda, os.Getenv("AWS_LAMBDA_FUNCTION_NAME"), a.Log),
	}

	lambda.Start(invoke.Wrap(a.Log, fn.handleRequest))
}

func (f *function) handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// Warmup pings are answered before any S3 parsing.
	if warmup, ok := IsWarmupEvent(event); ok {
		return f.warmer.Handle(ctx, warmup)
	}

	var s3Event events.S3Event
	if err := json.Unmarshal(event, &s3Event); err != nil {
		return nil, fmt.Errorf("failed to parse S3 event: %w", err)
	}

	analyses, err := f.analyze(ctx, s3Event)
	if err != nil {
		return nil, err
	}
	return analyses, nil
}
