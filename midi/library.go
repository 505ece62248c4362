package midi

import (
	"io/fs"

	"github.com/jsphweid/maestro/file"
	"github.com/jsphweid/maestro/model"
	"github.com/jsphweid/maestro/util"
	"github.com/pkg/errors"
)

var ErrSourceNotFound = errors.New("no matching midi file")

// Library is a directory tree of MIDI files.
type Library struct {
	dir     string
	catalog model.FileNumToMidiPath
}

func NewLibrary(dir string) (*Library, error) {
	paths, err := util.GatherAllMidiPaths(dir, 0)
	if err != nil {
		return nil, errors.Wrapf(ErrSourceNotFound, "scanning %s: %v", dir, err)
	}
	if len(paths) == 0 {
		return nil, errors.Wrapf(ErrSourceNotFound, "no .mid or .midi files under %s", dir)
	}
	return &Library{dir: dir, catalog: file.CreateFileNumMap(paths)}, nil
}

func (l *Library) Dir() string {
	return l.dir
}

func (l *Library) Pieces() []file.Entry {
	return file.Entries(l.catalog)
}

func (l *Library) Find(identifier string) (file.Entry, bool) {
	return file.Find(l.catalog, identifier)
}

// Load reads the piece named by identifier (see file.Find). A file without
// any events yields an empty piece, not an error.
func (l *Library) Load(identifier string) (model.Piece, error) {
	entry, ok := l.Find(identifier)
	if !ok {
		return model.Piece{}, errors.Wrapf(ErrSourceNotFound, "%q", identifier)
	}
	return LoadFile(entry.Path)
}

func LoadFile(path string) (model.Piece, error) {
	parsed, err := ReadMidiFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Piece{}, errors.Wrapf(ErrSourceNotFound, "%s", path)
	}
	if err != nil {
		return model.Piece{}, err
	}
	return model.Piece{
		Name:   util.PieceName(path),
		Path:   path,
		Events: RawEvents(parsed),
	}, nil
}
