package cli

import (
	"github.com/spf13/cobra"
)

func newServeCommand(opts *options) *cobra.Command {
	var watchContent bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Compile, then serve the API and published files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := opts.module()
			if err != nil {
				return err
			}
			return module.Serve(cmd.Context(), watchContent)
		},
	}
	cmd.Flags().BoolVarP(&watchContent, "watch", "w", false, "recompile when content changes")
	cmd.Flags().String("addr", "", "listen address")
	bindFlag(opts.viper, "server.address", cmd.Flags().Lookup("addr"))
	return cmd
}

func newWatchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Compile, then recompile whenever content changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := opts.module()
			if err != nil {
				return err
			}
			report, err := module.Compile(cmd.Context(), false)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return module.Watch(cmd.Context())
		},
	}
}
