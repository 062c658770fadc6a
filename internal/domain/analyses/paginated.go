package analyses

// PaginatedResult represents a paginated listing with metadata
type PaginatedResult struct {
	Data       []*Analysis `json:"analyses"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	Total      int64       `json:"total_count"`
	TotalPages int         `json:"totalPages"`
}
