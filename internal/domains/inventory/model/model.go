package model

import "time"

const (
	TableName  = "room_inventory"
	EntityName = "inventory"

	FieldRoomType  = "room_type"
	FieldAvailable = "available"
)

// RoomInventory is one row of the per-room-type stock ledger.
// Available never goes negative; only the ledger service writes it.
type RoomInventory struct {
	RoomType   string    `db:"room_type"`
	Available  int       `db:"available"`
	ModifiedAt time.Time `db:"modified_at"`
}
