package dto

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"inn/internal/domains/booking/model"
	"inn/shared"
	gModel "inn/shared/model"
	"inn/shared/constant"
	"inn/shared/failure"
	"inn/shared/timezone"
	"inn/shared/validator"
)

type CreateBookingRequest struct {
	RoomType           string `json:"room_type" validate:"required"`
	Quantity           int    `json:"quantity"  validate:"gte=1"`
	CheckIn            string `json:"check_in"  validate:"omitempty,max=64"`
	CheckOut           string `json:"check_out" validate:"omitempty,max=64"`
	GuestName          string `json:"guest_name" validate:"required,max=100"`
	Phone              string `json:"phone" validate:"omitempty,max=20"`
	HasValidID         bool   `json:"has_valid_id"`
	PaymentAmount      int    `json:"payment_amount" validate:"gte=0"`
	PaymentChannel     string `json:"payment_channel" validate:"omitempty,max=50"`
	TransactionID      string `json:"transaction_id" validate:"omitempty,max=100"`
	AdditionalRequests string `json:"additional_requests" validate:"omitempty"`
}

// fieldAliases is the versioned mapping from accepted inbound field spellings
// to canonical request fields. Keys are matched after lowercasing and
// stripping "_" and "-", so e.g. "GuestName", "guest-name" and "guest_name"
// all resolve to the same entry.
var fieldAliases = map[string]string{
	"roomtype": model.FieldRoomType,
	"room":     model.FieldRoomType,

	"quantity": model.FieldQuantity,
	"qty":      model.FieldQuantity,
	"rooms":    model.FieldQuantity,

	"checkin":     model.FieldCheckIn,
	"checkindate": model.FieldCheckIn,
	"from":        model.FieldCheckIn,

	"checkout":     model.FieldCheckOut,
	"checkoutdate": model.FieldCheckOut,
	"to":           model.FieldCheckOut,

	"guestname": model.FieldGuestName,
	"fullname":  model.FieldGuestName,
	"name":      model.FieldGuestName,

	"phone":       model.FieldPhone,
	"phonenumber": model.FieldPhone,
	"mobile":      model.FieldPhone,

	"hasvalidid": model.FieldHasValidID,
	"validid":    model.FieldHasValidID,

	"paymentamount": model.FieldPaymentAmount,
	"amount":        model.FieldPaymentAmount,

	"paymentchannel": model.FieldPaymentChannel,
	"channel":        model.FieldPaymentChannel,

	"transactionid": model.FieldTransactionID,
	"txnid":         model.FieldTransactionID,

	"additionalrequests": model.FieldAdditionalRequests,
	"requests":           model.FieldAdditionalRequests,
	"notes":              model.FieldAdditionalRequests,
}

func squashKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, "_", "")
	key = strings.ReplaceAll(key, "-", "")

	return key
}

// NormalizeBookingPayload maps a raw JSON object with tolerant field spellings
// onto the canonical request shape. Later duplicate aliases do not overwrite a
// field that already has a non-empty value.
func NormalizeBookingPayload(payload map[string]any) CreateBookingRequest {
	req := CreateBookingRequest{
		Quantity: 1,
	}

	canonical := map[string]any{}

	for key, value := range payload {
		field, ok := fieldAliases[squashKey(key)]
		if !ok {
			continue
		}

		if _, taken := canonical[field]; taken {
			continue
		}

		canonical[field] = value
	}

	req.RoomType = asString(canonical[model.FieldRoomType])
	req.CheckIn = asString(canonical[model.FieldCheckIn])
	req.CheckOut = asString(canonical[model.FieldCheckOut])
	req.GuestName = asString(canonical[model.FieldGuestName])
	req.Phone = asString(canonical[model.FieldPhone])
	req.PaymentChannel = asString(canonical[model.FieldPaymentChannel])
	req.TransactionID = asString(canonical[model.FieldTransactionID])
	req.AdditionalRequests = asString(canonical[model.FieldAdditionalRequests])
	req.HasValidID = asBool(canonical[model.FieldHasValidID])

	if quantity, ok := asInt(canonical[model.FieldQuantity]); ok && quantity >= 1 {
		req.Quantity = quantity
	}

	if amount, ok := asInt(canonical[model.FieldPaymentAmount]); ok {
		req.PaymentAmount = amount
	}

	return req
}

// ParseCreateBookingRequest decodes, normalizes and validates an inbound
// booking payload.
func ParseCreateBookingRequest(r io.Reader) (CreateBookingRequest, error) {
	payload := map[string]any{}

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&payload); err != nil {
		return CreateBookingRequest{}, failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) // nolint:wrapcheck
	}

	req := NormalizeBookingPayload(payload)

	if err := validator.ValidateStruct(&req); err != nil {
		return CreateBookingRequest{}, err // nolint:wrapcheck
	}

	return req, nil
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return constant.Empty
	}
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}

		return parsed, true
	default:
		return 0, false
	}
}

func asBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false
		}

		return parsed
	default:
		return false
	}
}

func (c *CreateBookingRequest) ToModel() model.Booking {
	return model.Booking{
		ID:                 uuid.NewString(),
		RoomType:           c.RoomType,
		Quantity:           c.Quantity,
		CheckIn:            c.CheckIn,
		CheckOut:           c.CheckOut,
		GuestName:          c.GuestName,
		Phone:              c.Phone,
		HasValidID:         c.HasValidID,
		PaymentAmount:      c.PaymentAmount,
		PaymentChannel:     c.PaymentChannel,
		TransactionID:      c.TransactionID,
		AdditionalRequests: c.AdditionalRequests,
		Status:             constant.BookingStatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

type BookingResponse struct {
	ID                 string `json:"id"`
	RoomType           string `json:"room_type"`
	Quantity           int    `json:"quantity"`
	CheckIn            string `json:"check_in"`
	CheckOut           string `json:"check_out"`
	GuestName          string `json:"guest_name"`
	Phone              string `json:"phone"`
	HasValidID         bool   `json:"has_valid_id"`
	PaymentAmount      int    `json:"payment_amount"`
	PaymentChannel     string `json:"payment_channel"`
	TransactionID      string `json:"transaction_id"`
	AdditionalRequests string `json:"additional_requests"`
	Status             string `json:"status"`
	CreatedAt          string `json:"created_at"`
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomType = model.RoomType
	r.Quantity = model.Quantity
	r.CheckIn = model.CheckIn
	r.CheckOut = model.CheckOut
	r.GuestName = model.GuestName
	r.Phone = model.Phone
	r.HasValidID = model.HasValidID
	r.PaymentAmount = model.PaymentAmount
	r.PaymentChannel = model.PaymentChannel
	r.TransactionID = model.TransactionID
	r.AdditionalRequests = model.AdditionalRequests
	r.Status = model.Status
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type SubmitBookingResponse struct {
	Booking      BookingResponse `json:"booking"`
	NewAvailable int             `json:"new_available"`
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type BulkUpdateStats struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

type BulkUpdateResponse struct {
	Success bool            `json:"success"`
	Stats   BulkUpdateStats `json:"stats"`
}
