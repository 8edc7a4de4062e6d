package pipeline

// Catalog groups the dataset file names by camera key. Cameras preserves
// the order in which keys were first seen so that detection walks the
// folder deterministically.
type Catalog struct {
	Cameras []string
	Frames  map[string][]string
}

const (
	ActionKept       = "kept"
	ActionRedundant  = "redundant"
	ActionUnreadable = "unreadable"
)

// Decision is one row of the rolling decision log: what the detector did
// with a single frame and the change score that drove it.
type Decision struct {
	Camera string  `json:"camera"`
	Name   string  `json:"name"`
	Action string  `json:"action"`
	Score  float64 `json:"score"`
}
