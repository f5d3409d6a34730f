package dto

import (
	"hotelier/internal/domains/room/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	Name         string   `json:"name"          validate:"required,max=100"`
	PropertyType string   `json:"property_type" validate:"required,oneof=room hall"`
	Description  string   `json:"description"   validate:"omitempty,max=2000"`
	BasePrice    int64    `json:"base_price"    validate:"gte=0"`
	TaxPercent   float64  `json:"tax_percent"   validate:"gte=0,lte=100"`
	Capacity     int      `json:"capacity"      validate:"required,min=1"`
	Amenities    []string `json:"amenities"     validate:"omitempty,dive,max=100"`
	Images       []string `json:"images"        validate:"omitempty,dive,url"`
	Active       *bool    `json:"active"        validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Room{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(c.Name),
		PropertyType: c.PropertyType,
		Description:  c.Description,
		BasePrice:    c.BasePrice,
		TaxPercent:   decimal.NewFromFloat(c.TaxPercent).Round(2),
		Capacity:     c.Capacity,
		Amenities:    gModel.NewJSON(nonNil(c.Amenities)),
		Images:       gModel.NewJSON(nonNil(c.Images)),
		Active:       active,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	Name        string   `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string   `db:"description" json:"description" validate:"omitempty,max=2000"`
	BasePrice   *int64   `db:"base_price"  json:"base_price"  validate:"omitempty,gte=0"`
	TaxPercent  *float64 `json:"tax_percent" validate:"omitempty,gte=0,lte=100"`
	Capacity    *int     `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
	Amenities   []string `json:"amenities"   validate:"omitempty,dive,max=100"`
	Images      []string `json:"images"      validate:"omitempty,dive,url"`
	Active      *bool    `db:"active"      json:"active"      validate:"omitempty"`
}

func (u *UpdateRoomRequest) IsEmpty() bool {
	return u.Name == "" && u.Description == "" && u.BasePrice == nil && u.TaxPercent == nil &&
		u.Capacity == nil && u.Amenities == nil && u.Images == nil && u.Active == nil
}

// ToFields returns the columns to update; JSON and numeric columns are converted explicitly.
func (u *UpdateRoomRequest) ToFields(user string) map[string]any {
	fields := shared.TransformFields(*u, user)

	if u.TaxPercent != nil {
		fields[model.FieldTaxPercent] = decimal.NewFromFloat(*u.TaxPercent).Round(2)
	}

	if u.Amenities != nil {
		fields[model.FieldAmenities] = gModel.NewJSON(u.Amenities)
	}

	if u.Images != nil {
		fields[model.FieldImages] = gModel.NewJSON(u.Images)
	}

	return fields
}

type CreateUnitRequest struct {
	Number string `json:"number" validate:"required,max=20"`
	Floor  string `json:"floor"  validate:"omitempty,max=20"`
	Status string `json:"status" validate:"omitempty,oneof=available maintenance"`
}

func (c *CreateUnitRequest) ToModel(user, roomID string) model.Unit {
	status := c.Status
	if status == constant.Empty {
		status = model.UnitStatusAvailable
	}

	return model.Unit{
		ID:       uuid.NewString(),
		RoomID:   roomID,
		Number:   strings.TrimSpace(c.Number),
		Floor:    c.Floor,
		Status:   status,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type ReserveUnitRequest struct {
	RoomID        string
	RoomNumber    string
	BookingNumber string
	CheckIn       time.Time
	CheckOut      time.Time
	Adults        int
	Children      int
}

func (r *ReserveUnitRequest) ToModel(user string) model.BookedDate {
	return model.BookedDate{
		ID:            uuid.NewString(),
		RoomID:        r.RoomID,
		RoomNumber:    r.RoomNumber,
		BookingNumber: r.BookingNumber,
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		Status:        model.BookedDateStatusBooked,
		Adults:        r.Adults,
		Children:      r.Children,
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}
}

type UploadImagesRequest struct {
	Files []*multipart.FileHeader `json:"files" swaggerignore:"true" validate:"required,min=1,max=10,dive,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

type UploadImagesResponse struct {
	URLs []string `json:"urls"`
}

type BookedDateResponse struct {
	RoomNumber    string `json:"room_number"`
	BookingNumber string `json:"booking_number"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	Status        string `json:"status"`
	Adults        int    `json:"adults"`
	Children      int    `json:"children"`
}

func (r *BookedDateResponse) FromModel(model model.BookedDate) {
	r.RoomNumber = model.RoomNumber
	r.BookingNumber = model.BookingNumber
	r.CheckIn = timezone.Format(model.CheckIn, constant.DateFormat)
	r.CheckOut = timezone.Format(model.CheckOut, constant.DateFormat)
	r.Status = model.Status
	r.Adults = model.Adults
	r.Children = model.Children
}

type UnitResponse struct {
	ID          string               `json:"id"`
	RoomID      string               `json:"room_id"`
	Number      string               `json:"number"`
	Floor       string               `json:"floor"`
	Status      string               `json:"status"`
	BookedDates []BookedDateResponse `json:"booked_dates"`
}

func (r *UnitResponse) FromModel(model model.Unit, bookedDates []model.BookedDate) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.Number = model.Number
	r.Floor = model.Floor
	r.Status = model.Status

	r.BookedDates = []BookedDateResponse{}

	for _, bookedDate := range bookedDates {
		if bookedDate.RoomID != model.RoomID || bookedDate.RoomNumber != model.Number {
			continue
		}

		var res BookedDateResponse
		res.FromModel(bookedDate)
		r.BookedDates = append(r.BookedDates, res)
	}
}

type RoomResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	PropertyType string         `json:"property_type"`
	Description  string         `json:"description"`
	BasePrice    int64          `json:"base_price"`
	TaxPercent   float64        `json:"tax_percent"`
	Capacity     int            `json:"capacity"`
	Amenities    []string       `json:"amenities"`
	Images       []string       `json:"images"`
	Active       bool           `json:"active"`
	Units        []UnitResponse `json:"units"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.PropertyType = model.PropertyType
	r.Description = model.Description
	r.BasePrice = model.BasePrice
	r.TaxPercent = model.TaxPercent.InexactFloat64()
	r.Capacity = model.Capacity
	r.Amenities = nonNil(model.Amenities.V)
	r.Images = nonNil(model.Images.V)
	r.Active = model.Active
	r.Units = []UnitResponse{}
	r.Metadata.FromModel(model.Metadata)
}

func (r *RoomResponse) WithUnits(units []model.Unit, bookedDates []model.BookedDate) {
	r.Units = make([]UnitResponse, 0, len(units))

	for _, unit := range units {
		if unit.RoomID != r.ID {
			continue
		}

		var res UnitResponse
		res.FromModel(unit, bookedDates)
		r.Units = append(r.Units, res)
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, units []model.Unit, bookedDates []model.BookedDate, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
		r.Rooms[i].WithUnits(units, bookedDates)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
