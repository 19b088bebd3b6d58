// Package cli holds the cobra commands of the zone-renamer binary.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ironsheep/zone-renamer/internal/ocr"
)

// Environment variables read after .env is loaded. Flags win when set.
const (
	envLogLevel = "ZONE_RENAMER_LOG_LEVEL"
	envLanguage = "ZONE_RENAMER_OCR_LANG"
	envTessdata = "ZONE_RENAMER_TESSDATA"
)

// globals are the persistent flags shared by every subcommand.
type globals struct {
	logLevel   string
	language   string
	tessdata   string
	preprocess bool

	logger *slog.Logger

	// ocr returns the recognizer used by every command.
	ocr func() ocr.Recognizer
}

// tesseract builds the OCR engine from the persistent flags.
func (g *globals) tesseract() ocr.Recognizer {
	t := ocr.NewTesseract(g.language)
	t.TessdataPrefix = g.tessdata
	t.Preprocess = g.preprocess
	g.logger.Debug("OCR engine configured", "language", t.Language, "tessdata", t.TessdataPrefix, "preprocess", t.Preprocess)
	return t
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(version, nil)
}

// newRootCmd builds the command tree around rec, or around Tesseract when rec
// is nil.
func newRootCmd(version string, rec ocr.Recognizer) *cobra.Command {
	g := &globals{}
	g.ocr = g.tesseract
	if rec != nil {
		g.ocr = func() ocr.Recognizer { return rec }
	}

	cmd := &cobra.Command{
		Use:   "zone-renamer",
		Short: "Rename scanned images from text found in OCR zones",
		Long: `zone-renamer reads text from rectangular zones of every image in a batch and
copies each image into a destination folder under a name built from that text.

Zones are given in source pixels (--zone) or as drag gestures on a fitted
preview (--drag with --canvas). Sources are never modified.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			applyEnv(cmd, "log-level", envLogLevel, &g.logLevel)
			applyEnv(cmd, "lang", envLanguage, &g.language)
			applyEnv(cmd, "tessdata", envTessdata, &g.tessdata)

			level, err := parseLevel(g.logLevel)
			if err != nil {
				return err
			}
			// stdout belongs to the MCP protocol under serve, so logs always go to stderr.
			g.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(g.logger)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "Log level: debug, info, warn, error (env "+envLogLevel+")")
	cmd.PersistentFlags().StringVar(&g.language, "lang", ocr.DefaultLanguage, "Tesseract language(s), e.g. eng or eng+deu (env "+envLanguage+")")
	cmd.PersistentFlags().StringVar(&g.tessdata, "tessdata", "", "Directory holding tessdata language files (env "+envTessdata+")")
	cmd.PersistentFlags().BoolVar(&g.preprocess, "preprocess", false, "Grayscale, boost contrast and upscale small zones before OCR")

	cmd.AddCommand(newRenameCmd(g))
	cmd.AddCommand(newTestOCRCmd(g))
	cmd.AddCommand(newPreviewCmd(g))
	cmd.AddCommand(newServeCmd(g))

	return cmd
}

// applyEnv sets *dst from the environment unless the flag was given.
func applyEnv(cmd *cobra.Command, flag, env string, dst *string) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
