package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ArtifactStore persists run artifacts (banner images and the run log) to
// the location resolved for the run.
type ArtifactStore interface {
	ResolveLocation(parentFolderID string) StorageLocation
	StoreImage(ctx context.Context, loc StorageLocation, filename string, data []byte) (string, error)
	StoreLog(ctx context.Context, loc StorageLocation, entries []RunLogEntry) (string, error)
}

// DriveStorage uploads artifacts to a shared Google Drive folder, or writes
// them to a local directory when no usable credentials are available. The
// mode is fixed at construction time and applies to the whole run.
type DriveStorage struct {
	service  *drive.Service
	localDir string
	now      func() time.Time
}

// NewDriveStorage resolves ambient credentials and builds the store. It
// never fails: any credential or client problem is logged and the store
// starts in local mode instead.
func NewDriveStorage(ctx context.Context) *DriveStorage {
	creds, err := google.FindDefaultCredentials(ctx, drive.DriveScope)
	if err != nil {
		log.Printf("[Storage] %v, falling back to local output", &CredentialError{Err: err})
		return &DriveStorage{}
	}

	service, err := drive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		log.Printf("[Storage] Failed to create Drive client: %v, falling back to local output", err)
		return &DriveStorage{}
	}

	log.Printf("[Storage] Drive credentials resolved, remote upload enabled")
	return &DriveStorage{service: service}
}

func (s *DriveStorage) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// dir is the local fallback target. It defaults to the working directory,
// matching where the scheduled job drops artifacts in a dry run.
func (s *DriveStorage) dir() string {
	if s.localDir != "" {
		return s.localDir
	}
	return "."
}

// ResolveLocation decides where this run's artifacts go. Remote storage
// needs both a working Drive client and a configured parent folder;
// anything less downgrades the whole run to local output.
func (s *DriveStorage) ResolveLocation(parentFolderID string) StorageLocation {
	if s.service == nil || parentFolderID == "" {
		return StorageLocation{Kind: LocationLocal}
	}
	return StorageLocation{Kind: LocationDrive, FolderID: parentFolderID}
}

func (s *DriveStorage) StoreImage(ctx context.Context, loc StorageLocation, filename string, data []byte) (string, error) {
	if loc.IsLocal() {
		path, err := s.writeLocal(filename, data)
		if err != nil {
			return "", &StorageError{Op: "image write", Err: err}
		}
		log.Printf("[Storage] Saved image locally: %s", path)
		return path, nil
	}

	id, err := s.upload(ctx, loc.FolderID, filename, data, "image/png")
	if err != nil {
		return "", &StorageError{Op: "image upload", Err: err}
	}
	log.Printf("[Storage] Uploaded image %s (file ID: %s)", filename, id)
	return id, nil
}

// StoreLog writes the run log as pretty-printed JSON. The log is written in
// local mode too, so a dry run leaves the same audit trail as a live one.
func (s *DriveStorage) StoreLog(ctx context.Context, loc StorageLocation, entries []RunLogEntry) (string, error) {
	data, err := encodeRunLog(entries)
	if err != nil {
		return "", &StorageError{Op: "log encode", Err: err}
	}
	filename := fmt.Sprintf("log_%s.json", s.clock().Format("20060102_150405"))

	if loc.IsLocal() {
		path, err := s.writeLocal(filename, data)
		if err != nil {
			return "", &StorageError{Op: "log write", Err: err}
		}
		log.Printf("[Storage] Saved run log locally: %s", path)
		return path, nil
	}

	id, err := s.upload(ctx, loc.FolderID, filename, data, "application/json")
	if err != nil {
		return "", &StorageError{Op: "log upload", Err: err}
	}
	log.Printf("[Storage] Uploaded run log %s (file ID: %s)", filename, id)
	return id, nil
}

func (s *DriveStorage) upload(ctx context.Context, folderID, filename string, data []byte, mimeType string) (string, error) {
	meta := &drive.File{
		Name:    filename,
		Parents: []string{folderID},
	}
	created, err := s.service.Files.Create(meta).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", filename, err)
	}
	return created.Id, nil
}

func (s *DriveStorage) writeLocal(filename string, data []byte) (string, error) {
	outputDir := s.dir()
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %v", err)
	}
	path := filepath.Join(outputDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %v", path, err)
	}
	return path, nil
}

// encodeRunLog marshals entries with HTML escaping off so copy text is
// stored exactly as the model wrote it.
func encodeRunLog(entries []RunLogEntry) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
