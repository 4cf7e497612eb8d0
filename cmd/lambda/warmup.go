package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"golang.org/x/sync/errgroup"
)

const (
	// WarmupSource marks scheduled keep-warm pings.
	WarmupSource = "warmup"

	// WarmupDelay keeps this instance busy long enough for the
	// self-invocations to land on other instances.
	WarmupDelay = 75 * time.Millisecond
)

// WarmupEvent is the scheduled ping payload.
// Concurrency is the number of extra instances to wake.
type WarmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

// WarmupResult is returned instead of analyses for a ping.
type WarmupResult struct {
	StatusCode int          `json:"statusCode"`
	Body       WarmupStatus `json:"body"`
}

// WarmupStatus reports how many instances the ping reached.
type WarmupStatus struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
}

// Invoker is the subset of the Lambda client used for self-invocation.
type Invoker interface {
	Invoke(ctx context.Context, params *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

var _ Invoker = (*lambdasdk.Client)(nil)

// Warmer answers pings and fans them out to extra instances.
type Warmer struct {
	client       Invoker
	functionName string
	delay        time.Duration
	log          *slog.Logger
}

// NewWarmer creates a Warmer that invokes functionName.
func NewWarmer(client Invoker, functionName string, log *slog.Logger) *Warmer {
	return &Warmer{client: client, functionName: functionName, delay: WarmupDelay, log: log}
}

// IsWarmupEvent reports whether payload is a warmup ping.
// A missing or non-numeric concurrency means no fan-out.
func IsWarmupEvent(payload json.RawMessage) (*WarmupEvent, bool) {
	var probe struct {
		Source      *string         `json:"source"`
		Concurrency json.RawMessage `json:"concurrency"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, false
	}
	if probe.Source == nil || *probe.Source != WarmupSource {
		return nil, false
	}

	event := &WarmupEvent{Source: WarmupSource}
	var concurrency float64
	if err := json.Unmarshal(probe.Concurrency, &concurrency); err == nil {
		event.Concurrency = int(concurrency)
	}
	return event, true
}

// Handle answers a ping. Failed fan-out is logged and only this instance is counted.
func (w *Warmer) Handle(ctx context.Context, event *WarmupEvent) (*WarmupResult, error) {
	warmed := 1

	if event.Concurrency > 0 {
		if err := w.fanOut(ctx, event.Concurrency); err != nil {
			w.log.WarnContext(ctx, "warmup fan-out failed", slog.String("error", err.Error()))
		} else {
			warmed += event.Concurrency
		}
	}

	time.Sleep(w.delay)

	return &WarmupResult{
		StatusCode: http.StatusOK,
		Body:       WarmupStatus{Status: "warm", InstancesWarmed: warmed},
	}, nil
}

// fanOut asynchronously invokes this function count times.
// Children get concurrency 0 so they do not fan out again.
func (w *Warmer) fanOut(ctx context.Context, count int) error {
	payload, err := json.Marshal(WarmupEvent{Source: WarmupSource})
	if err != nil {
		return err
	}

	var g errgroup.Group
	for i := 0; i < count; i++ {
		g.Go(func() error {
			_, err := w.client.Invoke(ctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(w.functionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})
			return err
		})
	}
	return g.Wait()
}
