package openaiVision

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/akolanti/DocScanAPI/internal/customHttpClient"
	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
	"github.com/akolanti/DocScanAPI/internal/metrics"
	"github.com/akolanti/DocScanAPI/internal/vision"
	"github.com/akolanti/DocScanAPI/pkg/logger_i"
)

type visionClient struct {
	client    openai.Client
	modelName string
}

var logger *logger_i.Logger
var openaiClient *visionClient
var once sync.Once

func GetOpenAIVision(modelName string, apiKey string) vision.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("vision_openai")
		if apiKey == "" {
			logger.Error("OpenAI API key is not set")
			return
		}
		openaiClient = &visionClient{
			client: openai.NewClient(
				option.WithAPIKey(apiKey),
				option.WithHTTPClient(customHttpClient.PooledClient()),
			),
			modelName: modelName,
		}
		logger.Info("OpenAI vision client created", "model", modelName)
	})

	if openaiClient == nil {
		return nil
	}
	return openaiClient
}

func (c *visionClient) Classify(ctx context.Context, img vision.Image) (string, error) {
	return c.generate(ctx, "classify", vision.ClassifyPrompt(), img, vision.ClassifyMaxTokens)
}

func (c *visionClient) ExtractFields(ctx context.Context, img vision.Image, docType docModel.DocumentType, fields []string) (string, error) {
	return c.generate(ctx, "extract", vision.ExtractPrompt(docType, fields), img, vision.ExtractMaxTokens)
}

func (c *visionClient) generate(ctx context.Context, stage string, prompt string, img vision.Image, maxTokens int64) (string, error) {
	start := time.Now()

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(c.modelName),
		MaxTokens: openai.Int(maxTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(prompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: img.DataURL(),
				}),
			}),
		},
	})
	metrics.CaptureExecutionMetrics("openai_"+stage, time.Since(start))

	if err != nil {
		logger.Error("OpenAI call failed", "stage", stage, "error", err)
		return "", err
	}
	if len(completion.Choices) == 0 {
		logger.Error("OpenAI response has no choices", "stage", stage)
		return "", errors.New("no choices in completion response")
	}
	return completion.Choices[0].Message.Content, nil
}
