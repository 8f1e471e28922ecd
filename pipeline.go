package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// Pipeline step names recorded in failed log entries.
const (
	stepCopy   = "copy"
	stepImage  = "image"
	stepUpload = "upload"
)

// Pipeline runs one production cycle: copy, image, and upload for every
// project on the roster, then the run log.
type Pipeline struct {
	Copy     CopyGenerator
	Images   ImageGenerator
	Store    ArtifactStore
	History  RunStore
	Parent   string
	Projects []AdProject

	now func() time.Time
}

func (p *Pipeline) clock() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}

// Run processes every project and always flushes the run log, even when
// every project failed. A project failure is contained to its own log
// entry; the collected errors are joined and returned at the end.
func (p *Pipeline) Run(ctx context.Context) error {
	runID := uuid.NewString()
	today := p.clock().Format("2006-01-02")
	location := p.Store.ResolveLocation(p.Parent)

	log.Printf("[Pipeline] Starting run %s (%s) with %d projects, storage: %s",
		runID, today, len(p.Projects), location.Kind)

	var errs []error
	entries := make([]RunLogEntry, 0, len(p.Projects))
	for _, project := range p.Projects {
		entry, err := p.runProject(ctx, location, today, project)
		if err != nil {
			log.Printf("[Pipeline] Error processing %s: %v", project.ProductName, err)
			errs = append(errs, err)
		}
		entries = append(entries, entry)
	}

	if _, err := p.Store.StoreLog(ctx, location, entries); err != nil {
		log.Printf("[Pipeline] Error storing run log: %v", err)
		errs = append(errs, err)
	}

	if p.History != nil {
		if err := p.History.SaveEntries(runID, entries); err != nil {
			log.Printf("[Pipeline] Error saving run history: %v", err)
		}
	}

	succeeded := 0
	for _, entry := range entries {
		if entry.Status == EntryStatusOK {
			succeeded++
		}
	}
	log.Printf("[Pipeline] Run %s finished: %d/%d projects succeeded", runID, succeeded, len(p.Projects))

	return errors.Join(errs...)
}

// runProject produces one banner. It always returns a log entry; on
// failure the entry records which step failed and the error text, and the
// filename stays empty because no artifact reached storage.
func (p *Pipeline) runProject(ctx context.Context, loc StorageLocation, today string, project AdProject) (RunLogEntry, error) {
	log.Printf("[Pipeline] Processing project: %s", project.ProductName)

	entry := RunLogEntry{
		Date:    today,
		Project: project.ProductName,
		Status:  EntryStatusFailed,
	}

	content, err := p.Copy.GenerateCopy(ctx, project)
	if err != nil {
		entry.Step = stepCopy
		entry.Error = err.Error()
		return entry, err
	}
	entry.Content = content

	image, err := p.Images.GenerateImage(ctx, content.Prompt)
	if err != nil {
		entry.Step = stepImage
		entry.Error = err.Error()
		return entry, err
	}

	filename := fmt.Sprintf("%s_%s.png", project.ProductName, today)
	if _, err := p.Store.StoreImage(ctx, loc, filename, image); err != nil {
		entry.Step = stepUpload
		entry.Error = err.Error()
		return entry, err
	}

	entry.Filename = filename
	entry.Status = EntryStatusOK
	return entry, nil
}
