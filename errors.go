package main

import "fmt"

// CredentialError reports that ambient storage credentials could not be
// resolved. It is non-fatal: the storage manager downgrades every call for
// its lifetime to local-fallback mode instead of refusing to run.
type CredentialError struct {
	Err error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("storage credentials unavailable: %v", e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// GenerationError reports a copy-generation failure: the text backend was
// unreachable, or its response does not satisfy the expected document shape
// (most importantly a missing image prompt).
type GenerationError struct {
	Project string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("copy generation failed for %s: %v", e.Project, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ImageGenerationError reports that the image backend produced no usable
// image payload. Reason is set when the backend answered without image data
// (policy rejection, empty response); Err when the call itself failed.
type ImageGenerationError struct {
	Backend string
	Reason  string
	Err     error
}

func (e *ImageGenerationError) Error() string {
	if e.Reason != "" && e.Err != nil {
		return fmt.Sprintf("image generation failed (%s): %s: %v", e.Backend, e.Reason, e.Err)
	}
	if e.Reason != "" {
		return fmt.Sprintf("image generation failed (%s): %s", e.Backend, e.Reason)
	}
	return fmt.Sprintf("image generation failed (%s): %v", e.Backend, e.Err)
}

func (e *ImageGenerationError) Unwrap() error { return e.Err }

// StorageError reports a failed persistence call against the resolved
// location, remote upload and local fallback write alike.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
