package request

type UpdateStoreInfoRequest struct {
	StoreName     string  `json:"store_name" validate:"required,min=2,max=255"`
	OwnerName     *string `json:"owner_name,omitempty"`
	Address       *string `json:"address,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	BusinessHours *string `json:"business_hours,omitempty"`
	GoogleMapURL  *string `json:"google_map_url,omitempty"`
	SlideURL      *string `json:"slide_url,omitempty"`
	Description   *string `json:"description,omitempty"`
}
