package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProjectsDefaultRoster(t *testing.T) {
	projects, err := LoadProjects("")
	if err != nil {
		t.Fatalf("LoadProjects returned error: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 default project, got %d", len(projects))
	}
	if projects[0].ProductName != "コラーゲンゼリー" {
		t.Errorf("unexpected default product: %s", projects[0].ProductName)
	}
	if projects[0].Market != "Japanese" {
		t.Errorf("unexpected default market: %s", projects[0].Market)
	}
}

func TestLoadProjectsFromFile(t *testing.T) {
	roster := `projects:
  - product_name: コラーゲンゼリー
    target: 30代女性
    appeal: 肌のハリ、乾燥対策
    color: 淡いピンクと白
    taste: ナチュラル・清潔感
  - product_name: Vitamin Water
    target: runners
    appeal: quick hydration
    color: blue and silver
    taste: energetic
    market: English
    source_url: https://example.com/vitamin-water
`
	path := filepath.Join(t.TempDir(), "projects.yaml")
	if err := os.WriteFile(path, []byte(roster), 0644); err != nil {
		t.Fatalf("failed to write roster: %v", err)
	}

	projects, err := LoadProjects(path)
	if err != nil {
		t.Fatalf("LoadProjects returned error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].Target != "30代女性" {
		t.Errorf("unexpected target: %s", projects[0].Target)
	}
	if projects[1].Market != "English" {
		t.Errorf("unexpected market: %s", projects[1].Market)
	}
	if projects[1].SourceURL != "https://example.com/vitamin-water" {
		t.Errorf("unexpected source URL: %s", projects[1].SourceURL)
	}
}

func TestLoadProjectsMissingFile(t *testing.T) {
	if _, err := LoadProjects(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadProjectsEmptyRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	if err := os.WriteFile(path, []byte("projects: []\n"), 0644); err != nil {
		t.Fatalf("failed to write roster: %v", err)
	}
	if _, err := LoadProjects(path); err == nil {
		t.Fatal("expected error for empty roster")
	}
}

func TestLoadProjectsMissingProductName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	if err := os.WriteFile(path, []byte("projects:\n  - target: someone\n"), 0644); err != nil {
		t.Fatalf("failed to write roster: %v", err)
	}
	if _, err := LoadProjects(path); err == nil {
		t.Fatal("expected error for project without product_name")
	}
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("IMAGE_BACKEND", "openai")
	t.Setenv("DRIVE_FOLDER_ID", "folder-123")

	cfg := LoadConfig()
	if cfg.GeminiAPIKey != "gem-key" {
		t.Errorf("unexpected GeminiAPIKey: %s", cfg.GeminiAPIKey)
	}
	if cfg.ImageBackend != "openai" {
		t.Errorf("unexpected ImageBackend: %s", cfg.ImageBackend)
	}
	if cfg.DriveFolderID != "folder-123" {
		t.Errorf("unexpected DriveFolderID: %s", cfg.DriveFolderID)
	}
}
