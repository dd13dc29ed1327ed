package picture

import (
	"context"
	"log"
	"time"

	fileio "picam.api/v0/utils/fileIO"
)

// Delete removes one session directory tree. Deleting a directory that does
// not exist succeeds without invoking the delete tool.
func (s *Service) Delete(ctx context.Context, directory string) (err error) {
	event := Event{Op: OpDelete, Directory: directory, StartedAt: time.Now()}
	defer func() { s.finish(ctx, &event, err) }()

	token, dirPath, err := s.resolve(OpDelete, directory)
	if err != nil {
		return err
	}
	event.Directory = token

	unlock := s.locks.lock(token)
	defer unlock()

	exists, err := fileio.DirExists(dirPath)
	if err != nil {
		return filesystemError(OpDelete, err)
	}
	if !exists {
		return nil
	}

	if err := s.runner.Run(ctx, s.settings.DeleteCommand, "-r", "--", dirPath); err != nil {
		return toolError(OpDelete, err)
	}

	log.Printf("Deleted picture directory '%s'\n", token)
	return nil
}

// PurgeAll deletes the whole picture root and provisions it again. The two
// steps are not atomic: if re-provisioning fails the root stays missing until
// an operator intervenes.
func (s *Service) PurgeAll(ctx context.Context) (err error) {
	event := Event{Op: OpPurgeAll, StartedAt: time.Now()}
	defer func() { s.finish(ctx, &event, err) }()

	unlock := s.locks.lockAll()
	defer unlock()

	if err := s.runner.Run(ctx, s.settings.DeleteCommand, "-r", "--", s.settings.Root); err != nil {
		return toolError(OpPurgeAll, err)
	}
	if err := fileio.EnsureDir(s.settings.Root); err != nil {
		return filesystemError(OpPurgeAll, err)
	}

	log.Printf("Purged picture root '%s'\n", s.settings.Root)
	return nil
}
