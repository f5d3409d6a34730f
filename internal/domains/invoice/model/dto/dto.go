package dto

import (
	bookingModel "hotelier/internal/domains/booking/model"
	financeDto "hotelier/internal/domains/finance/model/dto"
	"hotelier/internal/domains/invoice/model"
	txnModel "hotelier/internal/domains/transaction/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	"hotelier/shared/timezone"
	"slices"

	"github.com/google/uuid"
)

// IssueRequest carries the booking being billed and its settled transaction.
type IssueRequest struct {
	Booking     bookingModel.Booking
	Transaction txnModel.Transaction
}

// ToModel snapshots the booking, transaction and hotel profile under invoiceNumber.
func (r *IssueRequest) ToModel(user, invoiceNumber string, hotel financeDto.SettingsResponse) model.Invoice {
	booking := r.Booking

	lines := make([]model.Line, len(booking.Rooms.V))
	for i, room := range booking.Rooms.V {
		lines[i] = model.Line{
			RoomType:   room.RoomType,
			RoomNumber: room.RoomNumber,
			Price:      room.Price,
			Tax:        room.Tax,
			Total:      room.Total,
		}
	}

	methods := []string{}

	for _, payment := range r.Transaction.Payments.V {
		if !slices.Contains(methods, payment.Method) {
			methods = append(methods, payment.Method)
		}
	}

	return model.Invoice{
		ID:            uuid.NewString(),
		InvoiceNumber: invoiceNumber,
		BookingNumber: booking.BookingNumber,
		Hotel: model.Hotel{
			Name:       hotel.HotelName,
			Address:    hotel.HotelAddress,
			GSTIN:      hotel.GSTIN,
			Phone:      hotel.Phone,
			Email:      hotel.Email,
			BrandColor: hotel.BrandColor,
		},
		Guest: model.Guest{
			GuestID: booking.GuestID,
			Name:    booking.GuestName(),
			Email:   booking.Email,
			Mobile:  booking.Mobile,
		},
		Stay: model.Stay{
			PropertyType: booking.PropertyType,
			CheckIn:      booking.CheckIn,
			CheckOut:     booking.CheckOut,
			Adults:       booking.Adults,
			Children:     booking.Children,
		},
		Lines: lines,
		Amounts: model.Amounts{
			RoomCharge:            booking.RoomCharge,
			Taxes:                 booking.Taxes,
			AdditionalGuestCharge: booking.AdditionalGuestCharge,
			ServicesCharge:        booking.ServicesCharge,
			Discount:              booking.Discount,
			DiscountAmount:        booking.DiscountAmount,
			Total:                 booking.Total,
		},
		Payment: model.Payment{
			PaymentMethod:    booking.PaymentMethod,
			PaymentStatus:    booking.PaymentStatus,
			PaymentType:      r.Transaction.PaymentType,
			TotalPaid:        r.Transaction.TotalPaid,
			RemainingBalance: r.Transaction.RemainingBalance,
			Methods:          methods,
		},
		IssuedAt: timezone.Now(),
		IssuedBy: user,
	}
}

type InvoiceResponse struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	BookingNumber string        `json:"booking_number"`
	Hotel         model.Hotel   `json:"hotel"`
	Guest         model.Guest   `json:"guest"`
	Stay          model.Stay    `json:"stay"`
	Lines         []model.Line  `json:"lines"`
	Amounts       model.Amounts `json:"amounts"`
	Payment       model.Payment `json:"payment"`
	IssuedAt      string        `json:"issued_at"`
	IssuedBy      string        `json:"issued_by"`
}

func (r *InvoiceResponse) FromModel(invoice model.Invoice) {
	r.ID = invoice.ID
	r.InvoiceNumber = invoice.InvoiceNumber
	r.BookingNumber = invoice.BookingNumber
	r.Hotel = invoice.Hotel
	r.Guest = invoice.Guest
	r.Stay = invoice.Stay
	r.Lines = invoice.Lines
	r.Amounts = invoice.Amounts
	r.Payment = invoice.Payment
	r.IssuedAt = timezone.Format(invoice.IssuedAt, constant.DateFormat)
	r.IssuedBy = invoice.IssuedBy
}

type GetInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetInvoicesResponse) FromModels(invoices []model.Invoice, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Invoices = make([]InvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		r.Invoices[i].FromModel(invoice)
	}
}

type IssuedEvent struct {
	InvoiceNumber string `json:"invoice_number"`
	BookingNumber string `json:"booking_number"`
	Total         int64  `json:"total"`
	IssuedAt      string `json:"issued_at"`
}
