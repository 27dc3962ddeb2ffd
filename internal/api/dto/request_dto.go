package dto

// PlaceRequestRequest payload for a new order. UserName is accepted for
// compatibility with older clients but the session identity always wins.
type PlaceRequestRequest struct {
	UserName  string `json:"userName"`
	ChefName  string `json:"chefName" validate:"required"`
	MealTitle string `json:"mealTitle" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
	Notes     string `json:"notes"`
}

// GetRequestsRequest payload; userName/role are compatibility fields only.
type GetRequestsRequest struct {
	UserName string `json:"userName"`
	Role     string `json:"role"`
}

// UpdateRequestStatusRequest payload. Status is a pointer so that status 0
// survives the required check.
type UpdateRequestStatusRequest struct {
	ID       string `json:"_id" validate:"required"`
	Status   *int   `json:"status" validate:"required"`
	UserName string `json:"userName"`
	Role     string `json:"role"`
}

// DeleteRequestRequest payload.
type DeleteRequestRequest struct {
	ID       string `json:"_id" validate:"required"`
	UserName string `json:"userName"`
	Role     string `json:"role"`
}
