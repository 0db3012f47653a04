package entity

import (
	"time"
)

type Timestamps struct {
	CreatedAt time.Time `db:"created_at" yaml:"-"`
	UpdatedAt time.Time `db:"updated_at" yaml:"-"`
}
