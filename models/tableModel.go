package models

import "time"

type TableStatus string

const (
	TableStatusFree     TableStatus = "FREE"
	TableStatusOccupied TableStatus = "OCCUPIED"
	TableStatusReserved TableStatus = "RESERVED"
	TableStatusCleaning TableStatus = "CLEANING"
)

func (s TableStatus) IsValid() bool {
	switch s {
	case TableStatusFree, TableStatusOccupied, TableStatusReserved, TableStatusCleaning:
		return true
	}
	return false
}

type Table struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name" validate:"required,min=1,max=100"`
	Status    TableStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
