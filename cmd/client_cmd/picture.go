// clientcmd package wraps the /picture endpoints in client sub-commands.
package clientcmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"picam.api/v0/pkg/picture"
)

// parseOptions turns repeated "key=value" flags into capture options,
// keeping the order they were given in.
func parseOptions(raw []string) (picture.CaptureOptions, error) {
	opts := picture.CaptureOptions{}
	for _, entry := range raw {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("option '%s' must be formatted as key=value", entry)
		}
		opts.Set(key, value)
	}
	return opts, nil
}

// printJSON writes v to stdout, indented.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func NewClientCaptureCommand() *cobra.Command {
	var (
		directory string
		name      string
		options   []string
	)

	captureCmd := &cobra.Command{
		Use:   "capture",
		Short: "Invokes POST /picture, taking a picture into a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseOptions(options)
			if err != nil {
				return err
			}

			artifact, err := clientContext.Capture(cmd.Context(), picture.CaptureRequest{
				Directory: directory,
				Name:      name,
				Options:   opts,
			})
			if err != nil {
				return fmt.Errorf("capture failed: %v", err)
			}
			return printJSON(artifact)
		},
	}

	captureCmd.Flags().StringVarP(&directory, "directory", "d", "", "Picture directory to capture into.")
	captureCmd.MarkFlagRequired("directory")
	captureCmd.Flags().StringVarP(&name, "name", "n", "", "(Optional) Base name of the picture.")
	captureCmd.Flags().StringArrayVarP(&options, "option", "o", nil, "Capture tool option as key=value, repeatable. ie. -o w=100 -o quality=80")

	return captureCmd
}

func NewClientSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync <directory>",
		Short: "Invokes PUT /picture/{directory}, copying a directory to the cloud host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := clientContext.Sync(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("sync failed: %v", err)
			}
			return printJSON(result)
		},
	}
}

func NewClientDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <directory>",
		Short: "Invokes DELETE /picture/{directory}",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := clientContext.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete failed: %v", err)
			}
			fmt.Printf("Deleted '%s'\n", args[0])
			return nil
		},
	}
}
