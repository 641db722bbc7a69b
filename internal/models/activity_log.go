package models

import "time"

// Known activity actions. The set is open: stores accept any non-empty action string.
const (
	ActionCreateProduct = "CREATE_PRODUCT"
	ActionUpdateProduct = "UPDATE_PRODUCT"
	ActionDeleteProduct = "DELETE_PRODUCT"
	ActionBulkCreate    = "BULK_CREATE"
)

// ActivityLog is an append-only audit entry describing what a user did.
type ActivityLog struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Username  string    `json:"username" bson:"username"`
	Action    string    `json:"action" bson:"action"`
	Details   string    `json:"details" bson:"details"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
