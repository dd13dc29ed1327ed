package picture

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"time"

	fileio "picam.api/v0/utils/fileIO"
)

// CaptureRequest asks for one picture to be taken into Directory.
type CaptureRequest struct {
	Directory string         `json:"directory"`
	Name      string         `json:"name,omitempty"`
	Options   CaptureOptions `json:"options,omitempty"`
}

// CaptureArtifact identifies a captured picture.
type CaptureArtifact struct {
	Name      string `json:"name"`
	Directory string `json:"directory"`
}

// Capture creates the session directory if needed and invokes the capture
// tool to write one picture into it. The directory is kept even when the
// tool fails.
func (s *Service) Capture(ctx context.Context, req CaptureRequest) (artifact *CaptureArtifact, err error) {
	event := Event{Op: OpCapture, Directory: req.Directory, StartedAt: time.Now()}
	defer func() { s.finish(ctx, &event, err) }()

	token, dirPath, err := s.resolve(OpCapture, req.Directory)
	if err != nil {
		return nil, err
	}
	event.Directory = token
	if strings.ContainsAny(req.Name, `/\`) {
		return nil, validationError(OpCapture, ErrInvalidName)
	}

	unlock := s.locks.lock(token)
	defer unlock()

	if err := fileio.EnsureDir(dirPath); err != nil {
		return nil, filesystemError(OpCapture, err)
	}

	name := artifactName(req.Name, s.now(), s.settings.Suffix)
	args := append(req.Options.Flags(), "-o", filepath.Join(dirPath, name))
	if err := s.runner.Run(ctx, s.settings.CaptureCommand, args...); err != nil {
		return nil, toolError(OpCapture, err)
	}

	log.Printf("Captured '%s' into '%s'\n", name, token)
	event.Name = name
	return &CaptureArtifact{Name: name, Directory: token}, nil
}
