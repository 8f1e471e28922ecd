package main

// AdProject describes one product to advertise. Projects come from the
// roster at startup and are never mutated during a run.
type AdProject struct {
	ProductName string `yaml:"product_name"`
	Target      string `yaml:"target"`
	Appeal      string `yaml:"appeal"`
	Color       string `yaml:"color"`
	Taste       string `yaml:"taste"`
	// Market is the language the copy should be written in. Empty means the
	// roster default (Japanese).
	Market string `yaml:"market"`
	// SourceURL optionally points at the product page; its text is handed to
	// the copy backend as factual grounding.
	SourceURL string `yaml:"source_url"`
}

// AdContent is the copy package generated for one project. Prompt is the only
// field with a hard requirement: it feeds the image backend and must never be
// empty. Everything else is free-form and flows into the run log as-is.
type AdContent struct {
	Headline    string   `json:"headline"`
	Subheadline string   `json:"subheadline"`
	Scene       string   `json:"scene"`
	Prompt      string   `json:"prompt"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Statuses recorded on run log entries.
const (
	EntryStatusOK     = "ok"
	EntryStatusFailed = "failed"
)

// RunLogEntry is one project's outcome within a run. The orchestrator
// accumulates entries in project order and flushes the whole slice once at
// the end of the run, never incrementally.
type RunLogEntry struct {
	Date     string     `json:"date"`
	Project  string     `json:"project"`
	Content  *AdContent `json:"content"`
	Filename string     `json:"filename"`
	Status   string     `json:"status"`
	Step     string     `json:"step,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// LocationKind tags a StorageLocation.
type LocationKind string

const (
	LocationDrive LocationKind = "drive"
	LocationLocal LocationKind = "local"
)

// StorageLocation names where a run's artifacts land: a Drive parent folder,
// or the local working directory when credentials or the folder id are
// missing. Only ResolveLocation constructs these; everything downstream stays
// mode-agnostic and hands the value back to the storage manager.
type StorageLocation struct {
	Kind     LocationKind
	FolderID string // Drive parent folder id; empty in local mode
}

func (l StorageLocation) IsLocal() bool { return l.Kind == LocationLocal }
