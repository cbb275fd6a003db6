package types

import (
	"context"
	"time"
)

// BaseModel carries the audit columns shared by every portal table
type BaseModel struct {
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	CreatedBy string    `db:"created_by" json:"created_by"`
	UpdatedBy string    `db:"updated_by" json:"updated_by"`
}

// GetDefaultBaseModel returns an active model stamped with the caller from ctx
func GetDefaultBaseModel(ctx context.Context) BaseModel {
	now := time.Now().UTC()
	userID := GetUserID(ctx)
	return BaseModel{
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: userID,
		UpdatedBy: userID,
	}
}

// Touch stamps the model as modified at now by the caller from ctx
func (b *BaseModel) Touch(ctx context.Context, now time.Time) {
	b.UpdatedAt = now.UTC()
	b.UpdatedBy = GetUserID(ctx)
}

func (b BaseModel) IsActive() bool {
	return b.Status == StatusActive
}
