package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cbpdata/cbpmap/pkg/cbpmap/output"
	"github.com/cbpdata/cbpmap/pkg/cbpmap/parser"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
)

func newPeriodsCmd() *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "periods [input.xlsx]",
		Short: "Print the master period timeline of a workbook as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			inputPath := args[0]
			if _, err := os.Stat(inputPath); os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", inputPath)
			}
			f, err := excelize.OpenFile(inputPath)
			if err != nil {
				return fmt.Errorf("open workbook: %w", err)
			}
			defer f.Close()

			wb, failed := parser.ReadWorkbook(f, filepath.Base(inputPath))
			for name, err := range failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: sheet %q unreadable: %v\n", name, err)
			}

			tl := parser.ScanPeriods(wb, cfg.Extraction.DateColumns)
			data, err := output.TimelineToJSON(tl, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}
