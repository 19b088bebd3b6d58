package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ironsheep/zone-renamer/internal/batch"
	"github.com/ironsheep/zone-renamer/internal/imaging"
	"github.com/ironsheep/zone-renamer/internal/naming"
	"github.com/ironsheep/zone-renamer/internal/report"
)

func newRenameCmd(g *globals) *cobra.Command {
	var (
		dest       string
		reportPath string
		exts       []string
		opts       = naming.DefaultOptions()
		zf         zoneFlags
	)

	cmd := &cobra.Command{
		Use:   "rename [flags] SOURCE...",
		Short: "Copy images into a folder under names read from their zones",
		Long: `Reads the text inside every zone of every source image and copies the image
into the destination folder under a name built from that text.

Texts are joined with "_" in zone order. Files without any text are named
no_text_found_N. Existing files are never overwritten: a numeric suffix is
added instead. A failure on one file is reported and the batch continues.

A directory given as SOURCE contributes its .jpg and .jpeg files (see --ext).`,
		Example: `  # Two zones in source pixels
  zone-renamer rename scans/ --dest out --zone 40,30,600,90 --zone 40,120,300,170

  # A zone dragged on a 400x300 preview of the first image
  zone-renamer rename scans/*.jpg --dest out --drag 20,15:200,45

  # Keep raw text, no counter, write a report
  zone-renamer rename scans/ --dest out --zone 0,0,500,80 --clean-text=false --add-counter=false --report run.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := expandSources(args, exts)
			if err != nil {
				return err
			}

			ref := ""
			if len(sources) > 0 {
				ref = sources[0]
			}
			zones, err := zf.resolve(ref, imaging.FileLoader, func(msg string) { g.logger.Warn(msg) })
			if err != nil {
				return err
			}

			req := batch.Request{Sources: sources, Destination: dest, Zones: zones, Options: opts}
			p := batch.New(g.ocr(), imaging.FileLoader, nil, g.logger)
			res, runErr := p.Run(cmd.Context(), req, progressPrinter(cmd.ErrOrStderr()))

			var pe *batch.PreconditionError
			if errors.As(runErr, &pe) {
				return runErr
			}

			if res != nil {
				printOutcomes(cmd.OutOrStdout(), res)
				fmt.Fprintln(cmd.OutOrStdout(), res.Summary())
			}
			if reportPath != "" && res != nil {
				if err := report.New(req, res).WriteFile(reportPath); err != nil {
					return err
				}
				g.logger.Info("Report written", "path", reportPath)
			}
			return runErr
		},
	}

	cmd.Flags().StringVarP(&dest, "dest", "d", "", "Destination folder (must exist)")
	cmd.Flags().BoolVar(&opts.CleanText, "clean-text", opts.CleanText, "Keep only letters, digits, '-' and '_' and join words with '_'")
	cmd.Flags().BoolVar(&opts.AddCounter, "add-counter", opts.AddCounter, "Prefix names with a zero-padded file counter")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a YAML report of the run to this path")
	cmd.Flags().StringSliceVar(&exts, "ext", defaultExtensions, "Extensions picked up from directory sources")
	zf.register(cmd)

	return cmd
}

// progressPrinter writes the status line of every progress event.
func progressPrinter(w io.Writer) batch.ProgressFunc {
	return func(p batch.Progress) {
		if p.Done {
			return
		}
		fmt.Fprintf(w, "[%3.0f%%] %s\n", p.Percent, p.Status)
	}
}

func printOutcomes(w io.Writer, res *batch.Result) {
	for _, o := range res.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(w, "FAILED  %s: %v\n", o.Source, o.Err)
			continue
		}
		fmt.Fprintf(w, "%s -> %s\n", o.Source, o.Destination)
	}
}
