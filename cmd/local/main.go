// Package main runs the functions outside Lambda against a notification file.
//
//	local -event testdata/event.json -variant save -env .env
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"github.com/pricofy/comprehend-s3/internal/app"
	"github.com/pricofy/comprehend-s3/internal/config"
	"github.com/pricofy/comprehend-s3/internal/handler"
	"github.com/pricofy/comprehend-s3/internal/invoke"
)

// Variants, from the plain greeting to analysis with saved results.
const (
	VariantHello   = "hello"
	VariantDump    = "dump"
	VariantAnalyze = "analyze"
	VariantSave    = "save"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("local", flag.ContinueOnError)
	flags.SetOutput(stderr)
	eventPath := flags.String("event", "", "path to an S3 notification JSON file")
	variant := flags.String("variant", VariantSave, "hello, dump, analyze or save")
	envFile := flags.String("env", "", "optional dotenv file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *eventPath == "" {
		return fmt.Errorf("-event is required")
	}

	if *envFile != "" {
		if err := config.LoadEnvFile(*envFile); err != nil {
			fmt.Fprintf(stderr, "%v, using OS environment\n", err)
		}
	}

	raw, err := os.ReadFile(*eventPath)
	if err != nil {
		return fmt.Errorf("failed to read event: %w", err)
	}
	var event events.S3Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return fmt.Errorf("failed to parse event: %w", err)
	}

	// Logs go to stderr so stdout only carries the result.
	a, err := app.New(ctx, os.Getenv, stdout, stderr)
	if err != nil {
		return err
	}

	ctx = lambdacontext.NewContext(ctx, &lambdacontext.LambdaContext{AwsRequestID: uuid.NewString()})
	result, err := dispatch(ctx, a.Log, a.Handler, *variant, raw, event)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// dispatch runs one variant through the same entry wrapper Lambda uses.
func dispatch(ctx context.Context, log *slog.Logger, h *handler.Handler, variant string, raw json.RawMessage, event events.S3Event) (interface{}, error) {
	switch variant {
	case VariantHello:
		return invoke.Wrap(log, h.Greet)(ctx, raw)
	case VariantDump:
		return invoke.Wrap(log, h.Dump)(ctx, event)
	case VariantAnalyze:
		return invoke.Wrap(log, h.Analyze)(ctx, event)
	case VariantSave:
		return invoke.Wrap(log, h.AnalyzeAndSave)(ctx, event)
	}
	return nil, fmt.Errorf("unknown variant %q", variant)
}
