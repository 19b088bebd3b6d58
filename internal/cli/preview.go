package cli

import (
	"fmt"

	disimaging "github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/ironsheep/zone-renamer/internal/imaging"
)

func newPreviewCmd(g *globals) *cobra.Command {
	var (
		output     string
		background string
		zf         zoneFlags
	)

	cmd := &cobra.Command{
		Use:   "preview [flags] IMAGE",
		Short: "Render the fitted preview of an image with its zones drawn on it",
		Long: `Fits the image into the canvas the way drag gestures are interpreted,
draws every zone with its label and writes the result as an image file.
The preview geometry (display size and offsets) is printed so drag
coordinates can be read off the rendered canvas.`,
		Example: `  zone-renamer preview scans/0001.jpg -o preview.png --zone 40,30,600,90
  zone-renamer preview scans/0001.jpg -o preview.png --canvas 800x600 --drag 20,15:200,45`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			w, h, err := parseCanvas(zf.canvas)
			if err != nil {
				return err
			}
			zones, err := zf.resolve(path, imaging.FileLoader, func(msg string) { g.logger.Warn(msg) })
			if err != nil {
				return err
			}

			img, err := imaging.Open(path)
			if err != nil {
				return err
			}
			canvas, result, err := imaging.RenderPreview(img, w, h, zones, imaging.OverlayOptions{Background: background})
			if err != nil {
				return err
			}
			if err := disimaging.Save(canvas, output); err != nil {
				return fmt.Errorf("failed to write preview: %w", err)
			}

			gm := result.Geometry
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source:  %dx%d\n", gm.SourceWidth, gm.SourceHeight)
			fmt.Fprintf(out, "display: %dx%d at offset (%d,%d) in %dx%d canvas\n",
				gm.DisplayWidth, gm.DisplayHeight, result.OffsetX, result.OffsetY, gm.CanvasWidth, gm.CanvasHeight)
			fmt.Fprintf(out, "%d zones defined\n", len(zones))
			fmt.Fprintf(out, "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "preview.png", "Output image path (format from extension)")
	cmd.Flags().StringVar(&background, "background", "", "Canvas background as #RRGGBB (default white)")
	zf.register(cmd)

	return cmd
}
