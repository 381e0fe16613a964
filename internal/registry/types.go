package registry

// ManifestFileName is the fixed manifest file name under a pack's base URL.
const ManifestFileName = "openpeon.json"

// Pack describes one entry of the registry index.
type Pack struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	SourceRepo  string `json:"source_repo"` // "owner/repo"
	SourceRef   string `json:"source_ref"`  // branch, tag, or commit
	SourcePath  string `json:"source_path"` // subdirectory within the repo, may be empty
}

// Index is the registry's list of packs, in document order.
type Index struct {
	Packs []Pack `json:"packs"`
}

// Manifest groups a pack's sound files under upstream category ids.
// Categories keep the order they appear in the manifest document.
type Manifest struct {
	Categories []Category
}

// Category is one upstream classification and its sounds.
type Category struct {
	ID     string
	Sounds []SoundEntry
}

// SoundEntry references one sound file. Only the basename of File matters.
type SoundEntry struct {
	File string `json:"file"`
}
