package models

type QueryResponse struct {
	Response  string `json:"response"`
	Image     string `json:"image,omitempty"` // base64 encoded PNG
	RequestID string `json:"request_id"`
}

type SupportedQuestion struct {
	Priority int    `json:"priority"`
	Kind     string `json:"kind"`
	Phrase   string `json:"phrase"`
	Chart    bool   `json:"chart"`
}

type SupportedQuestionsResponse struct {
	Count     int                 `json:"count"`
	Questions []SupportedQuestion `json:"questions"`
}

type DatasetSummaryResponse struct {
	ID              string   `json:"id"`
	Source          string   `json:"source"`
	Sample          bool     `json:"bundled_sample"`
	Rows            int      `json:"rows"`
	Columns         []string `json:"columns"`
	MissingAge      int      `json:"missing_age"`
	MissingEmbarked int      `json:"missing_embark_town"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
