// Package editor runs the dungeon designer's terminal event loop.
package editor

// Mode is what keyboard input currently drives.
type Mode int

const (
	// ModeEdit moves the cursor and edits cells.
	ModeEdit Mode = iota
	// ModeWalk moves a player through the dungeon.
	ModeWalk
	// ModeFileName edits the save file name.
	ModeFileName
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModeWalk:
		return "walk"
	case ModeFileName:
		return "file name"
	default:
		return "unknown"
	}
}
