package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/zone-renamer/internal/ocr"
	"github.com/ironsheep/zone-renamer/internal/server"
)

func newServeCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the interactive MCP server on stdin/stdout",
		Long: `Starts an MCP (Model Context Protocol) server over stdio. An MCP client
loads previews, drags zones onto them, tests OCR and runs batches through
tools; batch progress is streamed as notifications.

stdout carries the protocol; logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := g.ocr()
			if t, ok := rec.(*ocr.Tesseract); ok {
				info := t.Info()
				g.logger.Info("OCR engine", "available", info.Available, "version", info.Version,
					"language", info.Language, "backend", info.Backend)
			}

			server.Version = cmd.Root().Version
			srv := server.New(rec, g.logger)
			return srv.RunIO(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
