package dto

type MovementFilters struct {
	ProductID     int64
	ReferenceType string
	ReferenceID   int64
	Page          int
	PageSize      int
}
