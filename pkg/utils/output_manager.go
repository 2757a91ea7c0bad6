package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultCheckedMarker tags a csv that already passed validation
const DefaultCheckedMarker = "[CHECKED]"

// StoreExt is the extension of the sqlite store
const StoreExt = ".s3db"

// OutputManager derives every output path of a run from the input file name
type OutputManager struct {
	CheckedMarker string
}

// OutputPaths holds the input and all artifact paths of a run
type OutputPaths struct {
	Input      string `json:"input"`
	Root       string `json:"root"`   // directory + base name, extension and marker removed
	Suffix     string `json:"suffix"` // lower-cased extension, e.g. ".xlsx"
	Checked    bool   `json:"checked"`
	RawCSV     string `json:"raw_csv"`
	CheckedCSV string `json:"checked_csv"`
	Store      string `json:"store"`
	JSON       string `json:"json"`
	XML        string `json:"xml"`
}

// NewOutputManager creates a new output manager
func NewOutputManager(checkedMarker string) *OutputManager {
	if checkedMarker == "" {
		checkedMarker = DefaultCheckedMarker
	}
	return &OutputManager{CheckedMarker: checkedMarker}
}

// Resolve computes the artifact paths for an input file
func (om *OutputManager) Resolve(input string) OutputPaths {
	dir, file := filepath.Split(input)
	ext := filepath.Ext(file)
	base := strings.TrimSuffix(file, ext)

	checked := strings.Contains(base, om.CheckedMarker)
	if checked {
		base = strings.ReplaceAll(base, om.CheckedMarker, "")
	}
	root := filepath.Join(dir, base)
	if dir == "" {
		root = base
	}

	suffix := strings.ToLower(ext)
	store := root + StoreExt
	if suffix == StoreExt && !checked {
		// read from and write back to the input file whatever its extension case
		store = input
	}

	return OutputPaths{
		Input:      input,
		Root:       root,
		Suffix:     suffix,
		Checked:    checked,
		RawCSV:     root + ".csv",
		CheckedCSV: root + om.CheckedMarker + ".csv",
		Store:      store,
		JSON:       root + ".json",
		XML:        root + ".xml",
	}
}

// FileExists reports whether path names an existing regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// GetFileType determines the source type based on extension
func (om *OutputManager) GetFileType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return "csv"
	case ".xlsx", ".xlsm":
		return "excel"
	case StoreExt:
		return "sqlite"
	default:
		return "unknown"
	}
}
