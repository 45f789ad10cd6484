package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gostones/resumeupload/internal/types"
	"github.com/gostones/resumeupload/internal/uploader"
)

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := opts.client.CheckHealth(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), health)
		},
	}
}

func newUploadCmd(opts *options) *cobra.Command {
	var asBase64 bool

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a resume without processing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openFile(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			var result *uploader.UploadResult
			if asBase64 {
				result, err = opts.client.UploadFileAsBase64(cmd.Context(), f)
			} else {
				result, err = opts.client.UploadFile(cmd.Context(), f, nil)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().BoolVar(&asBase64, "base64", false, "Send the file as base64 inside a JSON body")

	return cmd
}

func newProcessCmd(opts *options) *cobra.Command {
	var processingType string

	cmd := &cobra.Command{
		Use:   "process <file-key>",
		Short: "Process a previously uploaded resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.client.ProcessResume(cmd.Context(), args[0], processingType)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&processingType, "type", "t", types.ProcessExtract, "Processing type (extract, analyze)")

	return cmd
}

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a resume's type and size locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openFile(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			if !opts.client.ValidateFile(f) {
				return fmt.Errorf("%s: invalid file type or size (%s, %d bytes)", f.Name(), f.ContentType(), f.Size())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s, %d bytes)\n", f.Name(), f.ContentType(), f.Size())
			return nil
		},
	}
}

func newSubmitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <file>",
		Short: "Validate, upload and extract a resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openFile(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			errOut := cmd.ErrOrStderr()
			out, err := opts.client.HandleFileUpload(cmd.Context(), f, uploader.Callbacks{
				OnStart: func() {
					fmt.Fprintf(errOut, "Uploading %s (%d bytes)\n", f.Name(), f.Size())
				},
				OnSuccess: func(o *uploader.Outcome) {
					fmt.Fprintf(errOut, "Uploaded to %s, sent %d bytes\n", o.Upload.Key, f.Count())
				},
				OnError: func(err error) {
					fmt.Fprintf(errOut, "Upload failed: %v\n", err)
				},
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}
