package specification

import (
	"fmt"

	"gorm.io/gorm"
)

// OrderBy sorts on a trusted column name; never pass user input as Field.
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	if s.Desc {
		return db.Order(fmt.Sprintf("%s DESC", s.Field))
	}
	return db.Order(fmt.Sprintf("%s ASC", s.Field))
}
