// Package mazeapi provides the HTTP surface for creating, animating,
// solving, and saving mazes.
package mazeapi

// CreateMazeRequest carries the construction parameters of a maze.
// Entry and Exit use the textual "x,y" form.
type CreateMazeRequest struct {
	Width       int    `json:"width" binding:"required"`
	Height      int    `json:"height" binding:"required"`
	Entry       string `json:"entry" binding:"required"`
	Exit        string `json:"exit" binding:"required"`
	Perfect     *bool  `json:"perfect" binding:"required"`
	Algo        string `json:"algo"`
	Seed        *int64 `json:"seed"`
	LoopDivisor int    `json:"loop_divisor"`
}

// MazeResponse is the renderer-facing snapshot of a maze session.
type MazeResponse struct {
	ID     string `json:"id"`
	Grid   string `json:"grid"` // hex rows, newline separated
	Pretty string `json:"pretty,omitempty"`
	Entry  string `json:"entry"`
	Exit   string `json:"exit"`
	Done   bool   `json:"done"`
	Cached bool   `json:"cached,omitempty"`
}

// SolveResponse lists the discovered entry-to-exit paths as NSEW
// direction strings, first one shortest.
type SolveResponse struct {
	Paths []string `json:"paths"`
}

// SaveResponse reports where a maze was persisted.
type SaveResponse struct {
	RecordID string `json:"record_id"`
}

// SavedMazeResponse is a persisted maze record.
type SavedMazeResponse struct {
	ID        string `json:"id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Grid      string `json:"grid"`
	Entry     string `json:"entry"`
	Exit      string `json:"exit"`
	Solution  string `json:"solution,omitempty"`
	CreatedAt string `json:"created_at"`
}
