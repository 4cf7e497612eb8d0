// Package main is the entry point for the Lambda function that analyzes uploaded text
// and returns the results without saving them.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/pricofy/comprehend-s3/internal/app"
	"github.com/pricofy/comprehend-s3/internal/invoke"
)

func main() {
	a, err := app.New(context.Background(), os.Getenv, os.Stdout, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	lambda.Start(invoke.Wrap(a.Log, a.Handler.Analyze))
}
