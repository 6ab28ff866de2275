package dto

// IngestDocumentMessage is the payload published on the ingestion topic, one per source file.
type IngestDocumentMessage struct {
	Collection string `json:"collection"`
	Source     string `json:"source"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Text       string `json:"text"`
}

type IngestReport struct {
	Documents int      `json:"documents"`
	Chunks    int      `json:"chunks"`
	Failed    []string `json:"failed,omitempty"`
}
