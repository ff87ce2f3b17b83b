package dto

type OrderFilters struct {
	CustomerID int64
	Status     string
	Page       int
	PageSize   int
}
