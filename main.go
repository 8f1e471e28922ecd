// main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

func main() {
	// Parse command line flags
	projectsPath := flag.String("projects", "", "Path to the YAML project roster (overrides PROJECTS_FILE)")
	envFile := flag.String("env", ".env", "Path to the env file")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("Warning: Error loading %s file: %v", *envFile, err)
	}

	cfg := LoadConfig()

	rosterPath := *projectsPath
	if rosterPath == "" {
		rosterPath = cfg.ProjectsFile
	}
	projects, err := LoadProjects(rosterPath)
	if err != nil {
		log.Fatalf("Error loading projects: %v", err)
	}

	ctx := context.Background()

	copyGen, imageGen, cleanup, err := buildGenerators(ctx, cfg)
	if err != nil {
		log.Fatalf("Error initializing generators: %v", err)
	}
	defer cleanup()

	store := NewDriveStorage(ctx)

	var history RunStore
	if cfg.DatabaseURL != "" {
		postgres, err := NewPostgresRunStore(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: run history disabled: %v", err)
		} else {
			history = postgres
		}
	}

	pipeline := &Pipeline{
		Copy:     copyGen,
		Images:   imageGen,
		Store:    store,
		History:  history,
		Parent:   cfg.DriveFolderID,
		Projects: projects,
	}

	if err := pipeline.Run(ctx); err != nil {
		log.Fatalf("Run finished with errors: %v", err)
	}
}

// buildGenerators selects the copy and image implementations from the
// configured keys. A missing key selects the offline fallback for that
// component, so a bare environment still produces a full local run.
func buildGenerators(ctx context.Context, cfg Config) (CopyGenerator, ImageGenerator, func(), error) {
	var clients []*genai.Client
	cleanup := func() {
		for _, client := range clients {
			client.Close()
		}
	}

	var copyGen CopyGenerator
	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("failed to create Gemini client: %v", err)
		}
		clients = append(clients, client)
		copyGen = NewGeminiCopyGenerator(client, NewPageFetcher())
	} else {
		log.Printf("[Main] GEMINI_API_KEY not set, using template copy")
		copyGen = TemplateCopyGenerator{}
	}

	backend := cfg.ImageBackend
	if backend == "" {
		backend = ImageBackendGemini
	}

	var imageGen ImageGenerator
	switch backend {
	case ImageBackendGemini:
		if cfg.NanobananaKey == "" {
			log.Printf("[Main] NANOBABANA_API_KEY not set, using placeholder banners")
			imageGen = PlaceholderImageGenerator{}
			break
		}
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.NanobananaKey))
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("failed to create Gemini image client: %v", err)
		}
		clients = append(clients, client)
		imageGen = NewGeminiImageGenerator(client)

	case ImageBackendOpenAI:
		if cfg.OpenAIAPIKey == "" {
			log.Printf("[Main] OPENAI_API_KEY not set, using placeholder banners")
			imageGen = PlaceholderImageGenerator{}
			break
		}
		imageGen = NewOpenAIImageGenerator(openai.NewClient(cfg.OpenAIAPIKey))

	default:
		return nil, nil, cleanup, fmt.Errorf("unknown image backend: %s", backend)
	}

	return copyGen, imageGen, cleanup, nil
}
