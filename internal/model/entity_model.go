package model

import "time"

// Entity is the hiring organization that owns jobs.
type Entity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Jobs        []Job     `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *Entity) TableName() string {
	return "entities"
}
