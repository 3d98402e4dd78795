package main

import (
	"errors"
	"fmt"

	"github.com/example/go-siphon/internal/doctor"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run conversion table and setup self-checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(stdout, "format: %s\n", cfg.Convert.Format)

			dcfg := doctor.Config{
				Checks: doctor.BuiltinChecks(cfg.Convert.Hanzi),
			}
			if cfgFile != "" {
				dcfg.ConfigFiles = []string{cfgFile}
			}

			result := doctor.Run(dcfg, stdout)

			if result.Failed() {
				for _, f := range result.Failures() {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(stdout, "doctor checks passed")

			return nil
		},
	}

	return cmd
}
