package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/tableval/internal/geometry"
	"github.com/sells-group/tableval/internal/model"
)

var (
	rowspanOriginal string
	rowspanChunk    string
	rowspanBox      string
)

var rowspanCmd = &cobra.Command{
	Use:   "rowspan",
	Short: "Reconstruct the bounding sub-box of a partial table chunk",
	Long: `Aligns a chunk's table rows against the full original table and slices the
original bounding box to the chunk's row range, for visualization overlay.

Example:
  tableval rowspan --original full_table.html --chunk chunk.html \
    --box '{"x":10,"y":100,"w":400,"h":90}'`,
	RunE: runRowspan,
}

func init() {
	f := rowspanCmd.Flags()
	f.StringVar(&rowspanOriginal, "original", "", "file with the full original table HTML")
	f.StringVar(&rowspanChunk, "chunk", "", "file with the chunk's partial table HTML")
	f.StringVar(&rowspanBox, "box", "", "original table bounding box (JSON)")
	_ = rowspanCmd.MarkFlagRequired("original")
	_ = rowspanCmd.MarkFlagRequired("chunk")
	_ = rowspanCmd.MarkFlagRequired("box")

	rootCmd.AddCommand(rowspanCmd)
}

func runRowspan(_ *cobra.Command, _ []string) error {
	originalHTML, err := os.ReadFile(rowspanOriginal)
	if err != nil {
		return eris.Wrapf(err, "rowspan: read %s", rowspanOriginal)
	}
	chunkHTML, err := os.ReadFile(rowspanChunk)
	if err != nil {
		return eris.Wrapf(err, "rowspan: read %s", rowspanChunk)
	}

	var box model.BoundingBox
	if err := json.Unmarshal([]byte(rowspanBox), &box); err != nil {
		return eris.Wrap(err, "rowspan: parse box")
	}

	recon := geometry.NewReconstructor(nil)
	seg, ok := recon.Reconstruct(string(originalHTML), box, string(chunkHTML))
	if !ok {
		// Absence is a result: callers fall back to the chunk's own box.
		zap.L().Info("no row span segment resolved")
		seg = nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(map[string]*model.RowSegment{"segment": seg}), "rowspan: encode")
}
