package picture

import (
	"context"
	"time"

	fileio "picam.api/v0/utils/fileIO"
)

// SyncResult lists the session directory after a sync as "directory/entry".
type SyncResult struct {
	Files []string `json:"files"`
}

// Sync mirrors a session directory to the remote host and lists what it
// holds. A directory that does not exist is a successful no-op with no files:
// neither the copy tool nor the listing runs.
func (s *Service) Sync(ctx context.Context, directory string) (result *SyncResult, err error) {
	event := Event{Op: OpSync, Directory: directory, StartedAt: time.Now()}
	defer func() { s.finish(ctx, &event, err) }()

	token, dirPath, err := s.resolve(OpSync, directory)
	if err != nil {
		return nil, err
	}
	event.Directory = token

	unlock := s.locks.lock(token)
	defer unlock()

	exists, err := fileio.DirExists(dirPath)
	if err != nil {
		return nil, filesystemError(OpSync, err)
	}
	if !exists {
		return &SyncResult{Files: []string{}}, nil
	}

	args := []string{"-a", "-r", "-v"}
	if s.settings.KeyFile != "" {
		args = append(args, "-e", "ssh -i "+s.settings.KeyFile)
	}
	args = append(args, dirPath, s.settings.remoteTarget())
	if err := s.runner.Run(ctx, s.settings.SyncCommand, args...); err != nil {
		return nil, toolError(OpSync, err)
	}

	files, err := fileio.ListDir(s.settings.Root, token)
	if err != nil {
		return nil, filesystemError(OpSync, err)
	}

	event.Files = len(files)
	return &SyncResult{Files: files}, nil
}
