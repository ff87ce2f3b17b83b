package dto

type ShipmentFilters struct {
	SupplierID int64
	Status     string
	Page       int
	PageSize   int
}
