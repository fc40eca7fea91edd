package entity

// StoreInfo is the storefront singleton: contact details and the
// public page content.
type StoreInfo struct {
	Base
	StoreName     string  `db:"store_name"`
	OwnerName     *string `db:"owner_name"`
	Address       *string `db:"address"`
	Phone         *string `db:"phone"`
	Email         *string `db:"email"`
	BusinessHours *string `db:"business_hours"`
	GoogleMapURL  *string `db:"google_map_url"`
	SlideURL      *string `db:"slide_url"`
	Description   *string `db:"description"`
}
