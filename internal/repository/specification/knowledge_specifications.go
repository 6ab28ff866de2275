package specification

import "gorm.io/gorm"

type ByCollection struct {
	Collection string
}

func (s ByCollection) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("collection = ?", s.Collection)
}

type BySource struct {
	Source string
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source = ?", s.Source)
}

type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}
