package dto

import (
	"hotelier/internal/domains/availability/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type UpsertAvailabilityRequest struct {
	RoomID        string
	RoomNumber    string
	BookingNumber string
	Status        string
	CheckIn       time.Time
	CheckOut      time.Time
	GuestName     string
	GuestEmail    string
	GuestMobile   string
}

func (r *UpsertAvailabilityRequest) ToRecord(user string, now time.Time) model.Availability {
	return model.Availability{
		ID:         uuid.NewString(),
		RoomID:     r.RoomID,
		RoomNumber: r.RoomNumber,
		Metadata:   gModel.NewMetadata(user, now),
	}
}

func (r *UpsertAvailabilityRequest) ToHistory(user, availabilityID string, now time.Time) model.History {
	return model.History{
		ID:               uuid.NewString(),
		AvailabilityID:   availabilityID,
		BookingNumber:    r.BookingNumber,
		Status:           r.Status,
		StatusTimestamps: gModel.NewJSON(map[string]time.Time{r.Status: now}),
		CheckIn:          r.CheckIn,
		CheckOut:         r.CheckOut,
		GuestName:        r.GuestName,
		GuestEmail:       r.GuestEmail,
		GuestMobile:      r.GuestMobile,
		Metadata:         gModel.NewMetadata(user, now),
	}
}

type HistoryResponse struct {
	BookingNumber    string            `json:"booking_number"`
	Status           string            `json:"status"`
	StatusTimestamps map[string]string `json:"status_timestamps"`
	CheckIn          string            `json:"check_in"`
	CheckOut         string            `json:"check_out"`
	GuestName        string            `json:"guest_name"`
	GuestEmail       string            `json:"guest_email"`
	GuestMobile      string            `json:"guest_mobile"`
}

func (r *HistoryResponse) FromModel(model model.History) {
	r.BookingNumber = model.BookingNumber
	r.Status = model.Status
	r.CheckIn = timezone.Format(model.CheckIn, constant.DateFormat)
	r.CheckOut = timezone.Format(model.CheckOut, constant.DateFormat)
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.GuestMobile = model.GuestMobile

	r.StatusTimestamps = make(map[string]string, len(model.StatusTimestamps.V))
	for status, at := range model.StatusTimestamps.V {
		r.StatusTimestamps[status] = timezone.Format(at, constant.DateFormat)
	}
}

type AvailabilityResponse struct {
	ID         string            `json:"id"`
	RoomID     string            `json:"room_id"`
	RoomNumber string            `json:"room_number"`
	History    []HistoryResponse `json:"history"`
}

func (r *AvailabilityResponse) FromModel(record model.Availability, histories []model.History) {
	r.ID = record.ID
	r.RoomID = record.RoomID
	r.RoomNumber = record.RoomNumber
	r.History = []HistoryResponse{}

	for _, history := range histories {
		if history.AvailabilityID != record.ID {
			continue
		}

		var res HistoryResponse
		res.FromModel(history)
		r.History = append(r.History, res)
	}
}

type GetAvailabilitiesResponse struct {
	Availabilities []AvailabilityResponse `json:"availabilities"`
	TotalPage      int                    `json:"total_page"`
	TotalData      int                    `json:"total_data"`
}

func (r *GetAvailabilitiesResponse) FromModels(records []model.Availability, histories []model.History, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Availabilities = make([]AvailabilityResponse, len(records))
	for i, record := range records {
		r.Availabilities[i].FromModel(record, histories)
	}
}
