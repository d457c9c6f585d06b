package registry

// ProjectSummary is a single search hit. The registry ranks hits server-side;
// no ordering beyond "ranked" is relied on.
type ProjectSummary struct {
	ProjectID   string `json:"project_id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Downloads   int    `json:"downloads"`
}

// Project is the full registry record for a plugin project. The ID is stable;
// the slug is human-readable and may change.
type Project struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	License     License  `json:"license"`
	Downloads   int      `json:"downloads"`
}

// License identifies a project's license.
type License struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Version is one release of a Project. VersionNumber is a display string and
// is not assumed to be comparable; recency ordering comes from the registry.
type Version struct {
	ID            string   `json:"id"`
	ProjectID     string   `json:"project_id"`
	Name          string   `json:"name"`
	VersionNumber string   `json:"version_number"`
	Loaders       []string `json:"loaders"`
	Files         []File   `json:"files"`
}

// File is one downloadable file attached to a Version.
type File struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Primary  bool   `json:"primary"`
}

// PrimaryFile returns the file flagged primary, falling back to the first
// file when none is flagged. Returns false when the version has no files.
func (v *Version) PrimaryFile() (File, bool) {
	if len(v.Files) == 0 {
		return File{}, false
	}
	for _, f := range v.Files {
		if f.Primary {
			return f, true
		}
	}
	return v.Files[0], true
}
