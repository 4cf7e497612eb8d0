// Package main is the entry point for the greeting Lambda function.
package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/pricofy/comprehend-s3/internal/app"
	"github.com/pricofy/comprehend-s3/internal/config"
	"github.com/pricofy/comprehend-s3/internal/handler"
	"github.com/pricofy/comprehend-s3/internal/invoke"
)

func main() {
	log := app.NewLogger(config.Load(os.Getenv), os.Stdout)
	h := handler.New(handler.Deps{Log: log})

	lambda.Start(invoke.Wrap(log, h.Greet))
}
