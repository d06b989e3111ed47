package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var downloadOutput string

var downloadCmd = &cobra.Command{
	Use:   "download <name>",
	Short: "Download a generated artifact to a local file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name := args[0]

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		file, err := st.GetFile(ctx, name)
		if err != nil {
			return err
		}

		out := downloadOutput
		if out == "" {
			out = file.Name
		}
		if err := os.WriteFile(out, file.Content, 0o644); err != nil {
			return eris.Wrapf(err, "write %s", out)
		}

		fmt.Printf("wrote %s (%d bytes)\n", out, len(file.Content))
		return nil
	},
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "output path (default: artifact name)")
	rootCmd.AddCommand(downloadCmd)
}
