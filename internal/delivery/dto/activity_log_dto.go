package dto

type ActivityLogResponse struct {
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
}

type ActivityLogListResponse struct {
	Logs  []ActivityLogResponse `json:"logs"`
	Total int                   `json:"total"`
}

// SeedCollectionReport describes what the seed loader did for one collection.
type SeedCollectionReport struct {
	Collection string `json:"collection"`
	Inserted   int    `json:"inserted"`
	Skipped    bool   `json:"skipped"`
	Reason     string `json:"reason,omitempty"`
}

type SeedReport struct {
	Collections []SeedCollectionReport `json:"collections"`
}
