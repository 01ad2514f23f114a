package model

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type UserProfile struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// LiveDeliveryEntry is one row of the /api/deliveries/live snapshot.
type LiveDeliveryEntry struct {
	ReferenceID string `json:"reference_id"`
	Consignee   string `json:"consignee"`
	Address     string `json:"address"`
	Status      string `json:"status"`
	LastUpdated string `json:"last_updated"`
	BatchID     string `json:"batch_id"`
}
