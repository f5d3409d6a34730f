package model

import "hotelier/shared/model"

const (
	UnitTableName  = "room_units"
	UnitEntityName = "room_unit"

	FieldUnitRoomID = "room_id"
	FieldUnitNumber = "number"
	FieldUnitStatus = "status"
)

const (
	UnitStatusAvailable   = "available"
	UnitStatusMaintenance = "maintenance"
)

type Unit struct {
	ID     string `db:"id"`
	RoomID string `db:"room_id"`
	Number string `db:"number"`
	Floor  string `db:"floor"`
	Status string `db:"status"`
	model.Metadata
}
