package model

import (
	"inn/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldRoomType           = "room_type"
	FieldQuantity           = "quantity"
	FieldCheckIn            = "check_in"
	FieldCheckOut           = "check_out"
	FieldGuestName          = "guest_name"
	FieldPhone              = "phone"
	FieldHasValidID         = "has_valid_id"
	FieldPaymentAmount      = "payment_amount"
	FieldPaymentChannel     = "payment_channel"
	FieldTransactionID      = "transaction_id"
	FieldAdditionalRequests = "additional_requests"
	FieldStatus             = "status"
)

// Booking is a persisted, inventory-consistent reservation. Check-in and
// check-out are stored as opaque date strings; payment fields are passthrough.
type Booking struct {
	ID                 string `db:"id"`
	RoomType           string `db:"room_type"`
	Quantity           int    `db:"quantity"`
	CheckIn            string `db:"check_in"`
	CheckOut           string `db:"check_out"`
	GuestName          string `db:"guest_name"`
	Phone              string `db:"phone"`
	HasValidID         bool   `db:"has_valid_id"`
	PaymentAmount      int    `db:"payment_amount"`
	PaymentChannel     string `db:"payment_channel"`
	TransactionID      string `db:"transaction_id"`
	AdditionalRequests string `db:"additional_requests"`
	Status             string `db:"status"`
	model.Metadata
}
