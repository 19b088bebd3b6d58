package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/zone-renamer/internal/batch"
	"github.com/ironsheep/zone-renamer/internal/imaging"
)

func newTestOCRCmd(g *globals) *cobra.Command {
	var (
		clean bool
		zf    zoneFlags
	)

	cmd := &cobra.Command{
		Use:   "test-ocr [flags] IMAGE",
		Short: "Show the text each zone yields on one image",
		Long: `Runs OCR on every zone of a single image and prints one line per zone.
Nothing is copied. Use it to check zones before a batch.`,
		Example: `  zone-renamer test-ocr scans/0001.jpg --zone 40,30,600,90 --zone 40,120,300,170`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			zones, err := zf.resolve(path, imaging.FileLoader, func(msg string) { g.logger.Warn(msg) })
			if err != nil {
				return err
			}

			results, err := batch.TestZones(g.ocr(), imaging.FileLoader, path, zones, clean)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintln(cmd.OutOrStdout(), r)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clean, "clean-text", true, "Show text as it would be used in a name")
	zf.register(cmd)

	return cmd
}
