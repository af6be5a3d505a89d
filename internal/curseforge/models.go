package curseforge

import "time"

type ProjectLinks struct {
	WebsiteUrl string `json:"websiteUrl"`
	WikiUrl    string `json:"wikiUrl"`
	IssuesUrl  string `json:"issuesUrl"`
	SourceUrl  string `json:"sourceUrl"`
}

type Logo struct {
	Id           int    `json:"id"`
	ProjectId    int    `json:"modId"`
	Url          string `json:"url"`
	Title        string `json:"title"`
	ThumbnailUrl string `json:"thumbnailUrl"`
}

type FileStatus int

const (
	Processing FileStatus = 1
	Approved   FileStatus = 4
	Released   FileStatus = 10
)

type FileHashAlgorithm int

const (
	SHA1 FileHashAlgorithm = 1
	MD5  FileHashAlgorithm = 2
)

type FileRelationType int

const (
	EmbeddedLibrary    FileRelationType = 1
	OptionalDependency FileRelationType = 2
	RequiredDependency FileRelationType = 3
	Tool               FileRelationType = 4
	Incompatible       FileRelationType = 5
	Include            FileRelationType = 6
)

type Dependency struct {
	ProjectId int              `json:"modId"`
	Type      FileRelationType `json:"type"`
}

type FileHash struct {
	Algorithm FileHashAlgorithm `json:"algo"`
	Hash      string            `json:"value"`
}

type SortableGameVersion struct {
	GameVersionName   string `json:"gameVersionName"`
	GameVersion       string `json:"gameVersion"`
	GameVersionPadded string `json:"gameVersionPadded"`
}

type File struct {
	Id                   int                   `json:"id"`
	ProjectId            int                   `json:"modId"`
	IsAvailable          bool                  `json:"isAvailable"`
	DisplayName          string                `json:"displayName"`
	FileName             string                `json:"fileName"`
	FileStatus           FileStatus            `json:"fileStatus"`
	Hashes               []FileHash            `json:"hashes"`
	FileDate             time.Time             `json:"fileDate"`
	DownloadUrl          string                `json:"downloadUrl"`
	GameVersions         []string              `json:"gameVersions"`
	SortableGameVersions []SortableGameVersion `json:"sortableGameVersions"`
	Dependencies         []Dependency          `json:"dependencies"`
	FileFingerprint      int                   `json:"fileFingerprint"`
}

type Project struct {
	Id      int          `json:"id"`
	Name    string       `json:"name"`
	Slug    string       `json:"slug"`
	Links   ProjectLinks `json:"links"`
	Summary string       `json:"summary"`
	Logo    Logo         `json:"logo"`
}

type Pagination struct {
	Cursor      int `json:"index"`
	PageSize    int `json:"pageSize"`
	ResultCount int `json:"resultCount"`
	TotalCount  int `json:"totalCount"`
}

type GameId int

const (
	Minecraft GameId = 432
)
