package schema

import "strings"

// CorePhotoTable represents the 'core.photo' table
type CorePhotoTable struct {
	Table       string
	ID          string
	OwnerID     string
	ImageURL    string
	Rating      string
	Version     string
	Tier        string
	Status      string
	Tags        string
	IsSensitive string
	CreatedAt   string
	UpdatedAt   string
}

// CorePhoto is the schema definition for core.photo
var CorePhoto = CorePhotoTable{
	Table:       "core.photo",
	ID:          "id",
	OwnerID:     "ownerid",
	ImageURL:    "imageurl",
	Rating:      "rating",
	Version:     "version",
	Tier:        "tier",
	Status:      "status",
	Tags:        "tags",
	IsSensitive: "issensitive",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t CorePhotoTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.ImageURL, t.Rating, t.Version, t.Tier,
		t.Status, t.Tags, t.IsSensitive, t.CreatedAt, t.UpdatedAt,
	}
}

// Select returns the column list for SELECT clauses. ID columns are cast to
// text so they scan into plain strings.
func (t CorePhotoTable) Select() string {
	columns := t.Columns()
	columns[0] = t.ID + "::text"
	columns[1] = t.OwnerID + "::text"
	return strings.Join(columns, ", ")
}
