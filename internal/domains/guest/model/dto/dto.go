package dto

import (
	"hotelier/internal/domains/guest/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

type ResolveGuestRequest struct {
	FirstName     string
	LastName      string
	Email         string
	Mobile        string
	BookingNumber string
}

func (r *ResolveGuestRequest) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *ResolveGuestRequest) ToModel(user, guestID string) model.Guest {
	now := timezone.Now()

	return model.Guest{
		ID:                uuid.NewString(),
		GuestID:           guestID,
		FirstName:         strings.TrimSpace(r.FirstName),
		LastName:          strings.TrimSpace(r.LastName),
		Email:             r.NormalizedEmail(),
		Mobile:            strings.TrimSpace(r.Mobile),
		BookingCount:      1,
		LastBookingNumber: r.BookingNumber,
		Metadata:          gModel.NewMetadata(user, now),
	}
}

type GuestResponse struct {
	ID                string `json:"id"`
	GuestID           string `json:"guest_id"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	Mobile            string `json:"mobile"`
	BookingCount      int    `json:"booking_count"`
	LastBookingNumber string `json:"last_booking_number"`
	gDto.Metadata
}

func (r *GuestResponse) FromModel(model model.Guest) {
	r.ID = model.ID
	r.GuestID = model.GuestID
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Email = model.Email
	r.Mobile = model.Mobile
	r.BookingCount = model.BookingCount
	r.LastBookingNumber = model.LastBookingNumber
	r.Metadata.FromModel(model.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod)
	}
}
