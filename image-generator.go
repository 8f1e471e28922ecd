package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
)

const (
	ImageBackendGemini = "gemini"
	ImageBackendOpenAI = "openai"

	imageModelName = "gemini-2.5-flash-image"
)

// ImageGenerator renders the banner image for an English prompt. The
// returned bytes are always PNG at the standard banner size.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// GeminiImageGenerator renders banners with the Gemini image model and
// normalizes the result to banner dimensions.
type GeminiImageGenerator struct {
	model *genai.GenerativeModel
}

func NewGeminiImageGenerator(client *genai.Client) *GeminiImageGenerator {
	return &GeminiImageGenerator{model: client.GenerativeModel(imageModelName)}
}

func (g *GeminiImageGenerator) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, &ImageGenerationError{Backend: ImageBackendGemini, Err: fmt.Errorf("failed to generate image: %w", err)}
	}

	data, err := inlineImageData(resp)
	if err != nil {
		return nil, &ImageGenerationError{Backend: ImageBackendGemini, Err: err}
	}

	banner, err := NormalizeBanner(data)
	if err != nil {
		return nil, &ImageGenerationError{Backend: ImageBackendGemini, Reason: "banner normalization failed", Err: err}
	}
	return banner, nil
}

// inlineImageData extracts the first inline image payload from a model
// response. Text parts are ignored; some models interleave commentary with
// the image blob.
func inlineImageData(resp *genai.GenerateContentResponse) ([]byte, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates returned in response, possible error or safety filter")
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				return blob.Data, nil
			}
		}
	}
	return nil, fmt.Errorf("no image data in response")
}

// OpenAIImageGenerator renders banners with DALL-E 3 as an alternative
// backend. 1792x1024 is the closest supported landscape size; the result is
// normalized to banner dimensions afterwards.
type OpenAIImageGenerator struct {
	client *openai.Client
}

func NewOpenAIImageGenerator(client *openai.Client) *OpenAIImageGenerator {
	return &OpenAIImageGenerator{client: client}
}

func (g *OpenAIImageGenerator) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	req := openai.ImageRequest{
		Prompt:         prompt,
		Model:          openai.CreateImageModelDallE3,
		Size:           openai.CreateImageSize1792x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
		N:              1,
	}

	resp, err := g.client.CreateImage(ctx, req)
	if err != nil {
		return nil, &ImageGenerationError{Backend: ImageBackendOpenAI, Err: fmt.Errorf("failed to generate image: %w", err)}
	}

	data, err := openaiImageBytes(resp)
	if err != nil {
		return nil, &ImageGenerationError{Backend: ImageBackendOpenAI, Err: err}
	}

	banner, err := NormalizeBanner(data)
	if err != nil {
		return nil, &ImageGenerationError{Backend: ImageBackendOpenAI, Reason: "banner normalization failed", Err: err}
	}
	return banner, nil
}

func openaiImageBytes(resp openai.ImageResponse) ([]byte, error) {
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no image data in response")
	}
	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image payload in response")
	}
	return data, nil
}

// PlaceholderImageGenerator is the offline fallback used when no image API
// key is configured. It draws a flat banner-sized PNG so downstream storage
// and logging behave exactly as they would with a real image.
type PlaceholderImageGenerator struct{}

func (PlaceholderImageGenerator) GenerateImage(_ context.Context, prompt string) ([]byte, error) {
	log.Printf("[ImageGen] No API key configured, drawing placeholder banner for prompt: %s", truncateRunes(prompt, 80))

	img := image.NewRGBA(image.Rect(0, 0, bannerWidth, bannerHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 240, G: 240, B: 240, A: 255}), image.Point{}, draw.Src)
	strip := image.Rect(0, 0, bannerWidth, 48)
	draw.Draw(img, strip, image.NewUniform(color.RGBA{R: 50, G: 50, B: 50, A: 255}), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &ImageGenerationError{Backend: "placeholder", Err: err}
	}
	return buf.Bytes(), nil
}
