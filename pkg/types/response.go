package types

// APIResponse is the success envelope every endpoint writes.
type APIResponse struct {
	Data any            `json:"data"`
	Meta *OffsetPageMeta `json:"meta,omitempty"`
}

// OffsetPageMeta is attached to list responses.
type OffsetPageMeta struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// APIErrorResponse is the error envelope.
type APIErrorResponse struct {
	Error APIErrorBody `json:"error"`
}

type APIErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}
