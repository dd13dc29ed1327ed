// config package holds the process-wide settings, assembled once at startup
// from command-line flags, environment variables (optionally seeded from a
// .env file) and defaults.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"picam.api/v0/pkg/picture"
)

// Global verbosity toggle, set by the root command.
var (
	Verbose bool
)

// Configuration keys. Each one is also read from the upper-cased
// environment variable, ie. picture_path <- PICTURE_PATH.
const (
	KeyPicturePath    = "picture_path"
	KeyPictureSuffix  = "picture_suffix"
	KeyPemFile        = "pem_file"
	KeyCloudUser      = "cloud_user"
	KeyCloudURL       = "cloud_url"
	KeyCloudDest      = "cloud_dest"
	KeyCaptureCmd     = "capture_cmd"
	KeySyncCmd        = "sync_cmd"
	KeyDeleteCmd      = "delete_cmd"
	KeyCommandTimeout = "command_timeout"
	KeyDatabaseURL    = "database_url"
	KeyTelegramToken  = "telegram_token"
	KeyTelegramChatID = "telegram_chat_id"
)

// Flag name to configuration key.
var flagKeys = map[string]string{
	"picturePath":    KeyPicturePath,
	"pictureSuffix":  KeyPictureSuffix,
	"pemFile":        KeyPemFile,
	"cloudUser":      KeyCloudUser,
	"cloudUrl":       KeyCloudURL,
	"cloudDest":      KeyCloudDest,
	"captureCmd":     KeyCaptureCmd,
	"syncCmd":        KeySyncCmd,
	"deleteCmd":      KeyDeleteCmd,
	"commandTimeout": KeyCommandTimeout,
	"databaseUrl":    KeyDatabaseURL,
	"telegramToken":  KeyTelegramToken,
	"telegramChatId": KeyTelegramChatID,
}

// Config is built once by Load and treated as read-only afterwards.
type Config struct {
	PicturePath   string
	PictureSuffix string

	PemFile   string
	CloudUser string
	CloudURL  string
	CloudDest string

	CaptureCommand string
	SyncCommand    string
	DeleteCommand  string
	CommandTimeout time.Duration

	// Optional integrations, disabled when empty.
	DatabaseURL    string
	TelegramToken  string
	TelegramChatID int64
}

// RegisterFlags adds the picture configuration flags to a flag set.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("picturePath", "pictures", "Root directory holding all picture directories.")
	flags.String("pictureSuffix", ".jpg", "Suffix appended to captured picture names.")
	flags.String("pemFile", "", "Private key used by ssh when syncing to the cloud host.")
	flags.String("cloudUser", "", "Remote user on the cloud host.")
	flags.String("cloudUrl", "", "Cloud host to sync pictures to.")
	flags.String("cloudDest", picture.DefaultRemoteDest, "Destination path on the cloud host.")
	flags.String("captureCmd", picture.DefaultCaptureCommand, "Camera capture utility.")
	flags.String("syncCmd", picture.DefaultSyncCommand, "Remote copy utility.")
	flags.String("deleteCmd", picture.DefaultDeleteCommand, "Recursive delete utility.")
	flags.Duration("commandTimeout", 60*time.Second, "Timeout applied to every external command.")
	flags.String("databaseUrl", "", "(Optional) Postgres URL for the operation journal.")
	flags.String("telegramToken", "", "(Optional) Telegram bot token for operator commands.")
	flags.Int64("telegramChatId", 0, "(Optional) Only accept bot commands from this chat.")
}

// BindFlags binds every registered flag found in the flag set to its key.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag '%s': %v", name, err)
		}
	}
	return nil
}

// Load reads the configuration from v, consulting the environment for every
// key, and validates it.
func Load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetDefault(KeyPicturePath, "pictures")
	v.SetDefault(KeyPictureSuffix, ".jpg")
	v.SetDefault(KeyCloudDest, picture.DefaultRemoteDest)
	v.SetDefault(KeyCaptureCmd, picture.DefaultCaptureCommand)
	v.SetDefault(KeySyncCmd, picture.DefaultSyncCommand)
	v.SetDefault(KeyDeleteCmd, picture.DefaultDeleteCommand)
	v.SetDefault(KeyCommandTimeout, 60*time.Second)

	cfg := &Config{
		PicturePath:    v.GetString(KeyPicturePath),
		PictureSuffix:  v.GetString(KeyPictureSuffix),
		PemFile:        v.GetString(KeyPemFile),
		CloudUser:      v.GetString(KeyCloudUser),
		CloudURL:       v.GetString(KeyCloudURL),
		CloudDest:      v.GetString(KeyCloudDest),
		CaptureCommand: v.GetString(KeyCaptureCmd),
		SyncCommand:    v.GetString(KeySyncCmd),
		DeleteCommand:  v.GetString(KeyDeleteCmd),
		CommandTimeout: v.GetDuration(KeyCommandTimeout),
		DatabaseURL:    v.GetString(KeyDatabaseURL),
		TelegramToken:  v.GetString(KeyTelegramToken),
		TelegramChatID: v.GetInt64(KeyTelegramChatID),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values no request could succeed with.
func (c *Config) Validate() error {
	if c.PicturePath == "" {
		return fmt.Errorf("picture path cannot be empty")
	}
	if c.CaptureCommand == "" || c.SyncCommand == "" || c.DeleteCommand == "" {
		return fmt.Errorf("external commands cannot be empty")
	}
	if c.CommandTimeout < 0 {
		return fmt.Errorf("command timeout cannot be negative: %s", c.CommandTimeout)
	}
	return nil
}

// PictureSettings maps the configuration onto the picture service settings.
func (c *Config) PictureSettings() picture.Settings {
	return picture.Settings{
		Root:           c.PicturePath,
		Suffix:         c.PictureSuffix,
		KeyFile:        c.PemFile,
		RemoteUser:     c.CloudUser,
		RemoteHost:     c.CloudURL,
		RemoteDest:     c.CloudDest,
		CaptureCommand: c.CaptureCommand,
		SyncCommand:    c.SyncCommand,
		DeleteCommand:  c.DeleteCommand,
	}
}
