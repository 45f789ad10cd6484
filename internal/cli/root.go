// Package cli implements the resume command line client.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gostones/resumeupload/internal/config"
	"github.com/gostones/resumeupload/internal/document"
	"github.com/gostones/resumeupload/internal/uploader"
)

type options struct {
	configPath string
	apiURL     string
	logLevel   string

	client *uploader.Client
}

// NewRootCmd builds the command tree. Each call returns independent state.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "resume",
		Short:         "Resume upload client",
		Long:          "Upload resumes to the resume backend and trigger text extraction or analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVarP(&opts.apiURL, "api-url", "u", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (overrides config)")

	rootCmd.AddCommand(newHealthCmd(opts))
	rootCmd.AddCommand(newUploadCmd(opts))
	rootCmd.AddCommand(newProcessCmd(opts))
	rootCmd.AddCommand(newValidateCmd(opts))
	rootCmd.AddCommand(newSubmitCmd(opts))

	return rootCmd
}

// Execute runs the client against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *options) init(logOut io.Writer) error {
	cfg, _, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.apiURL != "" {
		cfg.Client.APIURL = o.apiURL
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
		if _, err := cfg.Logging.ParseLevel(); err != nil {
			return err
		}
	}

	logger := cfg.Logging.Logger(logOut)
	o.client = uploader.New(cfg.Client.APIURL, uploader.WithLogger(logger))
	return nil
}

func openFile(path string) (*document.File, error) {
	f, err := document.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Main runs the client and exits non-zero on failure.
func Main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
