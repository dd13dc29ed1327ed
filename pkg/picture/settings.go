package picture

import "fmt"

const (
	DefaultCaptureCommand = "raspistill"
	DefaultSyncCommand    = "rsync"
	DefaultDeleteCommand  = "rm"
	DefaultRemoteDest     = "~/apps/cloud-node/dist/assets/customer-photos"
)

// Settings is the process-wide picture configuration. It is copied into the
// Service at construction and never changes afterwards.
type Settings struct {
	// Base path holding every session directory.
	Root string
	// Appended to every generated file name, e.g. ".jpg".
	Suffix string

	// Remote sync credentials and destination.
	KeyFile    string
	RemoteUser string
	RemoteHost string
	RemoteDest string

	// External tools.
	CaptureCommand string
	SyncCommand    string
	DeleteCommand  string
}

func (s Settings) withDefaults() Settings {
	if s.RemoteDest == "" {
		s.RemoteDest = DefaultRemoteDest
	}
	if s.CaptureCommand == "" {
		s.CaptureCommand = DefaultCaptureCommand
	}
	if s.SyncCommand == "" {
		s.SyncCommand = DefaultSyncCommand
	}
	if s.DeleteCommand == "" {
		s.DeleteCommand = DefaultDeleteCommand
	}
	return s
}

// remoteTarget builds the copy destination. Without a host the destination
// is treated as a local path.
func (s Settings) remoteTarget() string {
	switch {
	case s.RemoteHost == "":
		return s.RemoteDest
	case s.RemoteUser == "":
		return fmt.Sprintf("%s:%s", s.RemoteHost, s.RemoteDest)
	default:
		return fmt.Sprintf("%s@%s:%s", s.RemoteUser, s.RemoteHost, s.RemoteDest)
	}
}
