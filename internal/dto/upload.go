package dto

// UploadMeta is the caller-supplied metadata of an upload request. All
// fields are advisory; sanitization decides what is stored.
type UploadMeta struct {
	OriginalFilename string   `json:"originalFilename"`
	UploadTime       string   `json:"uploadTime"`
	Warnings         []string `json:"warnings"`
}

type UploadRequest struct {
	Columns []string   `json:"columns"`
	Data    RecordList `json:"data"`
	Meta    UploadMeta `json:"meta"`
}

type UploadMetaResponse struct {
	OriginalFilename string   `json:"originalFilename"`
	UploadTime       string   `json:"uploadTime,omitempty"`
	Warnings         []string `json:"warnings"`
	ServerReceivedAt string   `json:"serverReceivedAt"`
	RowCount         int      `json:"rowCount"`
}

type UploadResponse struct {
	Success  bool               `json:"success"`
	UploadID string             `json:"uploadId"`
	RowCount int                `json:"rowCount"`
	Preview  []map[string]any   `json:"preview"`
	Meta     UploadMetaResponse `json:"meta"`
}

type ErrorResponse struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}
