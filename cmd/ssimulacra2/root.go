package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ssimulacra2",
		Short:         "Compare two images with the SSIMULACRA2 perceptual metric",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCompareCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ssimulacra2 CLI version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println(version)
			return nil
		},
	}
}

// version is a plain build-time constant rather than a VCS-embedded
// value: this module has no release process of its own to stamp it from.
const version = "0.1.0"
