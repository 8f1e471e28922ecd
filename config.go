package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is a snapshot of the environment taken once at startup. Empty
// fields are meaningful: a missing key switches the matching component to
// its offline implementation instead of failing the run.
type Config struct {
	GeminiAPIKey  string
	NanobananaKey string
	ImageBackend  string
	OpenAIAPIKey  string
	DriveFolderID string
	DatabaseURL   string
	ProjectsFile  string
}

func LoadConfig() Config {
	return Config{
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		NanobananaKey: os.Getenv("NANOBABANA_API_KEY"),
		ImageBackend:  os.Getenv("IMAGE_BACKEND"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		DriveFolderID: os.Getenv("DRIVE_FOLDER_ID"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		ProjectsFile:  os.Getenv("PROJECTS_FILE"),
	}
}

type projectsFile struct {
	Projects []AdProject `yaml:"projects"`
}

// LoadProjects reads the ad project roster from the given YAML file. An
// empty path returns the built-in roster so the pipeline stays runnable
// with zero configuration.
func LoadProjects(path string) ([]AdProject, error) {
	if path == "" {
		return defaultProjects(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects file %s: %w", path, err)
	}

	var roster projectsFile
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("failed to parse projects file %s: %w", path, err)
	}

	if len(roster.Projects) == 0 {
		return nil, fmt.Errorf("projects file %s contains no projects", path)
	}
	for i, p := range roster.Projects {
		if p.ProductName == "" {
			return nil, fmt.Errorf("projects file %s: project %d is missing product_name", path, i+1)
		}
	}

	return roster.Projects, nil
}

func defaultProjects() []AdProject {
	return []AdProject{
		{
			ProductName: "コラーゲンゼリー",
			Target:      "30代女性",
			Appeal:      "肌のハリ、乾燥対策",
			Color:       "淡いピンクと白",
			Taste:       "ナチュラル・清潔感",
			Market:      "Japanese",
		},
	}
}
