package models

import "time"

// ListFolder is the category a user has filed a title under.
type ListFolder string

const (
	FolderWatching    ListFolder = "Watching"
	FolderOnHold      ListFolder = "On-Hold"
	FolderPlanToWatch ListFolder = "Plan to Watch"
	FolderDropped     ListFolder = "Dropped"
	FolderCompleted   ListFolder = "Completed"
)

// ListFolders enumerates all valid folders in display order.
var ListFolders = []ListFolder{
	FolderWatching,
	FolderOnHold,
	FolderPlanToWatch,
	FolderDropped,
	FolderCompleted,
}

// Valid reports whether f is one of the known folders.
func (f ListFolder) Valid() bool {
	for _, known := range ListFolders {
		if f == known {
			return true
		}
	}
	return false
}

// LibraryEntry records that a user filed a title under a folder.
// A user holds at most one entry per title.
type LibraryEntry struct {
	AnimeID string     `json:"animeId"`
	Folder  ListFolder `json:"folder"`
	AddedAt time.Time  `json:"addedAt"`
}
