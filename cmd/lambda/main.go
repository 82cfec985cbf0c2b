// Command lambda serves the compression API behind Amazon API Gateway.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/go-kit/log/level"

	"pdfcompress/internal/app"
	"pdfcompress/internal/config"
	"pdfcompress/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger := logging.New(os.Stderr, config.LogConfig{})
		level.Error(logger).Log("msg", "failed to load config", "err", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.Log)

	a, err := app.Build(context.Background(), cfg, logger)
	if err != nil {
		level.Error(logger).Log("msg", "failed to build application", "err", err)
		os.Exit(1)
	}

	adapter := ginadapter.New(a.Engine())
	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
