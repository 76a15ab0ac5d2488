package dto

// FailedImage records one image reference whose migration failed. The upload
// still succeeds; the original URL stays in the persisted question.
type FailedImage struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// UploadResult is the outcome of a single question upload. Duplicate marks
// the non-exceptional "id already exists" rejection so the HTTP layer can
// map it without parsing the message.
type UploadResult struct {
	Success      bool          `json:"success"`
	Duplicate    bool          `json:"-"`
	Message      string        `json:"message"`
	S3URLs       []string      `json:"s3Urls,omitempty"`
	MongoID      string        `json:"mongoId,omitempty"`
	FailedImages []FailedImage `json:"failedImages,omitempty"`
}

// BatchResult accumulates per-question results in submission order.
type BatchResult struct {
	Successful int            `json:"successful"`
	Failed     int            `json:"failed"`
	Results    []UploadResult `json:"results"`
}

// DeleteManyResult reports how many documents a bulk delete removed.
type DeleteManyResult struct {
	Deleted int64 `json:"deleted"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
