package model

// ImportReport aggregates the outcome of one roster import. Per-row
// failures land in Errors; a bad row never aborts the batch.
type ImportReport struct {
	Created  int      `json:"created"`
	Existing int      `json:"existing"`
	Enrolled int      `json:"enrolled"`
	Errors   []string `json:"errors"`
}
