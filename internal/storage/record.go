// Package storage defines the dungeon save format and where save files live.
package storage

import (
	"encoding/json"
	"fmt"
)

// Version is the save format written by Encode.
//
//	1: x, z, prefabGuid
//	2: adds wallPrefabGuid and the four wall flags
const Version = 2

// CellRecord is the flat, identifier-based form of a dungeon cell.
type CellRecord struct {
	X          int    `json:"x"`
	Z          int    `json:"z"`
	PrefabGUID string `json:"prefabGuid"`
	WallGUID   string `json:"wallPrefabGuid,omitempty"`
	NorthWall  bool   `json:"northWall"`
	SouthWall  bool   `json:"southWall"`
	EastWall   bool   `json:"eastWall"`
	WestWall   bool   `json:"westWall"`
}

// UnmarshalJSON accepts every record shape the designer has written. Older
// files have no wall fields, and one interim shape named the floor
// identifier floorPrefabGuid.
func (r *CellRecord) UnmarshalJSON(data []byte) error {
	type plain CellRecord
	var aux struct {
		plain
		FloorGUID string `json:"floorPrefabGuid"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = CellRecord(aux.plain)
	if r.PrefabGUID == "" {
		r.PrefabGUID = aux.FloorGUID
	}
	return nil
}

// SaveFile is the document written to disk.
type SaveFile struct {
	Version int          `json:"version"`
	Name    string       `json:"name,omitempty"`
	Cells   []CellRecord `json:"cells"`
}

// Encode renders a save file as indented JSON.
func Encode(f SaveFile) ([]byte, error) {
	if f.Version == 0 {
		f.Version = Version
	}
	if f.Cells == nil {
		f.Cells = []CellRecord{}
	}
	data, err := json.MarshalIndent(f, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode save file: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a save file. Files without a version are treated as version 1.
func Decode(data []byte) (SaveFile, error) {
	var f SaveFile
	if err := json.Unmarshal(data, &f); err != nil {
		return SaveFile{}, fmt.Errorf("decode save file: %w", err)
	}
	if f.Version == 0 {
		f.Version = 1
	}
	if f.Version > Version {
		return SaveFile{}, fmt.Errorf("decode save file: version %d is newer than %d", f.Version, Version)
	}
	return f, nil
}
