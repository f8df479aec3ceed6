package schema

// CoreSwipeTable represents the 'core.swipe' table
type CoreSwipeTable struct {
	Table     string
	ID        string
	ViewerID  string
	PhotoID   string
	Verdict   string
	CreatedAt string
}

// CoreSwipe is the schema definition for core.swipe
var CoreSwipe = CoreSwipeTable{
	Table:     "core.swipe",
	ID:        "id",
	ViewerID:  "viewerid",
	PhotoID:   "photoid",
	Verdict:   "verdict",
	CreatedAt: "createdat",
}
