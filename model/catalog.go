package model

// FileNumToMidiPath numbers the pieces of a library, starting at 1.
type FileNumToMidiPath = map[uint32]string
