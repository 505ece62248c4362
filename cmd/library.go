package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/jsphweid/maestro/constants"
	"github.com/jsphweid/maestro/db"
	"github.com/jsphweid/maestro/file"
	"github.com/jsphweid/maestro/midi"
	"github.com/jsphweid/maestro/model"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var flagDir string

func init() {
	piecesCmd.Flags().StringVar(&flagDir, "dir", constants.GetMidiDir(), "Directory searched for .mid/.midi files")
	rootCmd.AddCommand(piecesCmd)
}

var piecesCmd = &cobra.Command{
	Use:   "pieces",
	Short: "Lists the pieces in the library",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := midi.NewLibrary(flagDir)
		if err != nil {
			return err
		}
		entries := lib.Pieces()
		metas := lookupMetadata(newLogger(), entries)
		return writePieces(os.Stdout, entries, metas)
	},
}

// metadataStore is nil unless an endpoint is configured.
func metadataStore() (*db.MetadataStore, error) {
	endpoint := constants.GetMetadataEndpoint()
	if endpoint == "" {
		return nil, nil
	}
	return db.NewMetadataStore(endpoint, constants.GetMetadataTable())
}

func lookupMetadata(logger *log.Logger, entries []file.Entry) map[string]model.PieceMetadata {
	store, err := metadataStore()
	if err != nil {
		logger.Warn("metadata disabled", "err", err)
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	metas, err := store.GetMidiMetadatas(names)
	if err != nil {
		logger.Warn("could not fetch metadata", "err", err)
		return nil
	}
	return metas
}

func writePieces(w io.Writer, entries []file.Entry, metas map[string]model.PieceMetadata) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		line := fmt.Sprintf("[%d]\t%s", e.Num, e.Name)
		if meta, ok := metas[e.Name]; ok && meta.Artist != "" {
			line += fmt.Sprintf("\t%s", meta.Artist)
		}
		fmt.Fprintln(tw, line)
	}
	return errors.Wrap(tw.Flush(), "writing pieces")
}

// selectPieces resolves each identifier against the library; no identifiers
// means the whole library in order.
func selectPieces(lib *midi.Library, identifiers []string) ([]file.Entry, error) {
	if len(identifiers) == 0 {
		return lib.Pieces(), nil
	}
	var res []file.Entry
	for _, id := range identifiers {
		e, ok := lib.Find(id)
		if !ok {
			return nil, errors.Wrapf(midi.ErrSourceNotFound, "%q", id)
		}
		res = append(res, e)
	}
	return res, nil
}
