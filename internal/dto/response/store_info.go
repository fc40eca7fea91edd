package response

import (
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/entity"
)

type StoreInfoResponse struct {
	ID            string  `json:"id"`
	StoreName     string  `json:"store_name"`
	OwnerName     *string `json:"owner_name,omitempty"`
	Address       *string `json:"address,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty"`
	BusinessHours *string `json:"business_hours,omitempty"`
	GoogleMapURL  *string `json:"google_map_url,omitempty"`
	SlideURL      *string `json:"slide_url,omitempty"`
	Description   *string `json:"description,omitempty"`
}

func StoreInfoToResponse(s *entity.StoreInfo) StoreInfoResponse {
	return StoreInfoResponse{
		ID:            s.ID.String(),
		StoreName:     s.StoreName,
		OwnerName:     s.OwnerName,
		Address:       s.Address,
		Phone:         s.Phone,
		Email:         s.Email,
		BusinessHours: s.BusinessHours,
		GoogleMapURL:  s.GoogleMapURL,
		SlideURL:      s.SlideURL,
		Description:   s.Description,
	}
}
