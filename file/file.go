package file

import (
	"strconv"
	"strings"

	"github.com/jsphweid/maestro/model"
	"github.com/jsphweid/maestro/util"
)

type Entry struct {
	Num  uint32 `json:"num"`
	Name string `json:"name"`
	Path string `json:"path"`
}

func CreateFileNumMap(paths []string) model.FileNumToMidiPath {
	res := make(model.FileNumToMidiPath)
	for i, v := range paths {
		res[uint32(i+1)] = v
	}
	return res
}

func Entries(m model.FileNumToMidiPath) []Entry {
	var res []Entry
	for _, num := range util.GetKeys(m) {
		res = append(res, Entry{Num: num, Name: util.PieceName(m[num]), Path: m[num]})
	}
	return res
}

// Find resolves an identifier given as a catalog number, a piece name, or a
// case-insensitive fragment of a name. Exact matches win over fragments.
func Find(m model.FileNumToMidiPath, identifier string) (Entry, bool) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Entry{}, false
	}

	if num, err := strconv.ParseUint(identifier, 10, 32); err == nil {
		if path, ok := m[uint32(num)]; ok {
			return Entry{Num: uint32(num), Name: util.PieceName(path), Path: path}, true
		}
	}

	entries := Entries(m)
	for _, e := range entries {
		if strings.EqualFold(e.Name, identifier) {
			return e, true
		}
	}
	needle := strings.ToLower(identifier)
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			return e, true
		}
	}
	return Entry{}, false
}
