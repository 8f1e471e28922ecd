package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

const (
	copyModelName = "gemini-2.0-flash"
	defaultMarket = "Japanese"
)

// CopyGenerator turns one ad project into banner copy plus the English
// prompt handed to the image backend.
type CopyGenerator interface {
	GenerateCopy(ctx context.Context, project AdProject) (*AdContent, error)
}

// GeminiCopyGenerator generates copy with the Gemini text model. The model
// is configured once for JSON output; the expected document shape is
// embedded in the prompt itself.
type GeminiCopyGenerator struct {
	model *genai.GenerativeModel
	pages *PageFetcher
}

func NewGeminiCopyGenerator(client *genai.Client, pages *PageFetcher) *GeminiCopyGenerator {
	model := client.GenerativeModel(copyModelName)
	model.SetTemperature(0.7)
	model.SetTopK(40)
	model.SetTopP(0.8)
	model.ResponseMIMEType = "application/json"
	return &GeminiCopyGenerator{model: model, pages: pages}
}

func (g *GeminiCopyGenerator) GenerateCopy(ctx context.Context, project AdProject) (*AdContent, error) {
	prompt := buildCopyPrompt(project, g.sourceContext(ctx, project))

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, &GenerationError{Project: project.ProductName, Err: fmt.Errorf("failed to generate content: %w", err)}
	}

	text, err := textFromResponse(resp)
	if err != nil {
		return nil, &GenerationError{Project: project.ProductName, Err: err}
	}

	content, err := parseAdContent(cleanJSONResponse(text))
	if err != nil {
		return nil, &GenerationError{Project: project.ProductName, Err: err}
	}

	log.Printf("[CopyGen] Generated copy for %s: %s", project.ProductName, content.Headline)
	return content, nil
}

// sourceContext fetches reference text from the project's product page.
// Failures only cost the model some context, so they are logged and the
// generation proceeds without it.
func (g *GeminiCopyGenerator) sourceContext(ctx context.Context, project AdProject) string {
	if g.pages == nil || project.SourceURL == "" {
		return ""
	}
	text, err := g.pages.FetchText(ctx, project.SourceURL)
	if err != nil {
		log.Printf("[CopyGen] Could not fetch source page for %s: %v", project.ProductName, err)
		return ""
	}
	return text
}

func buildCopyPrompt(project AdProject, sourceText string) string {
	market := project.Market
	if market == "" {
		market = defaultMarket
	}

	prompt := fmt.Sprintf(`As a **senior advertising copywriter**, design a banner concept for the following product.

Product name: %s
Target audience: %s
Key appeal: %s
Preferred colors: %s
Tone and style: %s`,
		project.ProductName, project.Target, project.Appeal, project.Color, project.Taste)

	if sourceText != "" {
		prompt += fmt.Sprintf(`

Reference material from the product page:
%s`, sourceText)
	}

	prompt += fmt.Sprintf(`

**Guidelines:**
1. **Write the headline and subheadline in %s.**
   - The headline is short and punchy; the subheadline backs it with one concrete benefit.
   - Speak directly to the target audience and lead with the key appeal.
2. **Describe the visual scene in %s.**
   - One or two sentences covering subject, layout, and mood of the banner.
3. **Write the image prompt in English.**
   - It is passed verbatim to an image generation model, so describe the complete banner: subject, composition, color palette, lighting, and style.
   - Do not ask for any text or lettering in the image; the copy is overlaid separately.
4. **Stay on message.**
   - Every element must reflect the key appeal, preferred colors, and tone above.

**Response Format:**
{
    "headline": "Main catch copy",
    "subheadline": "Supporting copy",
    "scene": "Visual composition of the banner",
    "prompt": "English prompt for the image generation model",
    "keywords": ["keyword 1", "keyword 2", "keyword 3"]
}`, market, market)

	return prompt
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned in response, possible error or safety filter")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content parts in the first candidate, possible empty response")
	}

	var builder strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			builder.WriteString(string(text))
		}
	}
	if builder.Len() == 0 {
		return "", fmt.Errorf("expected text parts in response, got: %+v", candidate.Content.Parts)
	}
	return builder.String(), nil
}

// cleanJSONResponse strips markdown code fences the model sometimes wraps
// around its output. If the remainder still does not start with a JSON
// object, it falls back to extracting the outermost brace pair.
func cleanJSONResponse(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if !strings.HasPrefix(cleaned, "{") {
		start := strings.Index(cleaned, "{")
		end := strings.LastIndex(cleaned, "}")
		if start >= 0 && end > start {
			cleaned = cleaned[start : end+1]
		}
	}
	return cleaned
}

func parseAdContent(raw string) (*AdContent, error) {
	var content AdContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %v, response: %s", err, raw)
	}
	if strings.TrimSpace(content.Prompt) == "" {
		return nil, fmt.Errorf("response is missing the image prompt, response: %s", raw)
	}
	return &content, nil
}

// TemplateCopyGenerator is the offline fallback used when no text API key
// is configured. It composes deterministic copy from the project fields so
// the rest of the pipeline can be exercised end to end.
type TemplateCopyGenerator struct{}

func (TemplateCopyGenerator) GenerateCopy(_ context.Context, project AdProject) (*AdContent, error) {
	log.Printf("[CopyGen] No API key configured, using template copy for %s", project.ProductName)
	return &AdContent{
		Headline:    project.ProductName,
		Subheadline: project.Appeal,
		Scene: fmt.Sprintf("%s centered on a %s background, %s mood",
			project.ProductName, project.Color, project.Taste),
		Prompt: fmt.Sprintf("Professional advertisement banner for %s, %s color theme, %s style, high quality, soft lighting, product centerpiece, no text.",
			project.ProductName, project.Color, project.Taste),
		Keywords: []string{project.ProductName, project.Target},
	}, nil
}
