package geminiVision

import (
	"context"
	"errors"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
	"github.com/akolanti/DocScanAPI/internal/metrics"
	"github.com/akolanti/DocScanAPI/internal/vision"
	"github.com/akolanti/DocScanAPI/pkg/logger_i"
)

// alternate vision backend; selected with VISION_PROVIDER=gemini

type visionClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *visionClient
var once sync.Once

func GetGeminiVision(ctx context.Context, modelName string, apiKey string) vision.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("vision_gemini")
		c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
		if err != nil {
			logger.Error("Error creating Gemini client:", "error", err)
			return
		}
		geminiClient = &visionClient{client: c, modelName: modelName}
		logger.Info("Gemini vision client created", "model", modelName)
	})

	if geminiClient == nil {
		return nil
	}
	return geminiClient
}

func (c *visionClient) Classify(ctx context.Context, img vision.Image) (string, error) {
	return c.generate(ctx, "classify", vision.ClassifyPrompt(), img, int32(vision.ClassifyMaxTokens))
}

func (c *visionClient) ExtractFields(ctx context.Context, img vision.Image, docType docModel.DocumentType, fields []string) (string, error) {
	return c.generate(ctx, "extract", vision.ExtractPrompt(docType, fields), img, int32(vision.ExtractMaxTokens))
}

func (c *visionClient) generate(ctx context.Context, stage string, prompt string, img vision.Image, maxTokens int32) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(img.Data, img.MIMEType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	contentConfig := &genai.GenerateContentConfig{
		MaxOutputTokens: maxTokens,
	}

	start := time.Now()
	result, err := c.client.Models.GenerateContent(ctx, c.modelName, contents, contentConfig)
	metrics.CaptureExecutionMetrics("gemini_"+stage, time.Since(start))

	if err != nil {
		logger.Error("Gemini call failed", "stage", stage, "error", err)
		return "", err
	}
	text := result.Text()
	if text == "" {
		logger.Error("Gemini response is empty", "stage", stage)
		return "", errors.New("empty generation response")
	}
	return text, nil
}
