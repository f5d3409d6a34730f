package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	kafkaMocks "hotelier/infras/kafka/mocks"
	"hotelier/infras/otel/mocks"
	bookingModel "hotelier/internal/domains/booking/model"
	financeMocks "hotelier/internal/domains/finance/mocks"
	financeDto "hotelier/internal/domains/finance/model/dto"
	invoiceMocks "hotelier/internal/domains/invoice/mocks"
	"hotelier/internal/domains/invoice/model"
	"hotelier/internal/domains/invoice/model/dto"
	"hotelier/internal/domains/invoice/repository"
	"hotelier/internal/domains/invoice/service"
	txnModel "hotelier/internal/domains/transaction/model"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
)

type fixture struct {
	repo    *invoiceMocks.MockInvoice
	finance *financeMocks.MockFinanceService
	kafka   *kafkaMocks.MockClient
	svc     service.Invoice
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:    invoiceMocks.NewMockInvoice(ctrl),
		finance: financeMocks.NewMockFinanceService(ctrl),
		kafka:   kafkaMocks.NewMockClient(ctrl),
	}

	f.kafka.EXPECT().Topic(gomock.Any()).DoAndReturn(func(name string) string { return name }).AnyTimes()
	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.finance, f.kafka, mocks.NewOtel())

	return f
}

func issueRequest() dto.IssueRequest {
	return dto.IssueRequest{
		Booking: bookingModel.Booking{
			BookingNumber: "B-010125-0001",
			FirstName:     "Asha",
			LastName:      "Rao",
			PaymentMethod: "cash",
			PaymentStatus: bookingModel.PaymentStatusCompleted,
			Total:         5000,
			Rooms: gModel.NewJSON([]bookingModel.RoomLine{
				{RoomID: "room-1", RoomType: "Deluxe", RoomNumber: "101", Price: 4500, Tax: 500, Total: 5000},
			}),
		},
		Transaction: txnModel.Transaction{
			TotalPaid:   5000,
			IsFullyPaid: true,
			PaymentType: txnModel.PaymentTypeFull,
			Payments: gModel.NewJSON([]txnModel.Payment{
				{Method: "cash", Amount: 3000},
				{Method: "upi", Amount: 1000},
				{Method: "cash", Amount: 1000},
			}),
		},
	}
}

func TestInvoiceService_Issue(t *testing.T) {
	req := issueRequest()
	archived := model.Invoice{ID: "inv-1", InvoiceNumber: "INV/25-26/3", BookingNumber: req.Booking.BookingNumber}

	tests := []struct {
		name      string
		setupMock func(f *fixture)
		want      string
		wantCode  int
	}{
		{
			name: "existing invoice is reused",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().GetByBookingNumber(gomock.Any(), req.Booking.BookingNumber).Return(archived, nil)
			},
			want: archived.InvoiceNumber,
		},
		{
			name: "new invoice snapshots the booking",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().GetByBookingNumber(gomock.Any(), req.Booking.BookingNumber).Return(model.Invoice{}, nil)
				f.finance.EXPECT().GetSettings(gomock.Any()).Return(financeDto.SettingsResponse{HotelName: "Lake View"}, nil)
				f.finance.EXPECT().NextInvoiceNumber(gomock.Any()).Return(financeDto.InvoiceNumberResponse{InvoiceNumber: "INV/25-26/4"}, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, invoice model.Invoice) error {
						assert.Equal(t, "Lake View", invoice.Hotel.Name)
						assert.Equal(t, "Asha Rao", invoice.Guest.Name)
						assert.Equal(t, []string{"cash", "upi"}, invoice.Payment.Methods)
						require.Len(t, invoice.Lines, 1)
						assert.Equal(t, int64(5000), invoice.Amounts.Total)

						return nil
					})
			},
			want: "INV/25-26/4",
		},
		{
			name: "concurrent issue returns the winner",
			setupMock: func(f *fixture) {
				gomock.InOrder(
					f.repo.EXPECT().GetByBookingNumber(gomock.Any(), req.Booking.BookingNumber).Return(model.Invoice{}, nil),
					f.repo.EXPECT().GetByBookingNumber(gomock.Any(), req.Booking.BookingNumber).Return(archived, nil),
				)
				f.finance.EXPECT().GetSettings(gomock.Any()).Return(financeDto.SettingsResponse{}, nil)
				f.finance.EXPECT().NextInvoiceNumber(gomock.Any()).Return(financeDto.InvoiceNumberResponse{InvoiceNumber: "INV/25-26/5"}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(repository.ErrDuplicate)
			},
			want: archived.InvoiceNumber,
		},
		{
			name: "no active financial year",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().GetByBookingNumber(gomock.Any(), req.Booking.BookingNumber).Return(model.Invoice{}, nil)
				f.finance.EXPECT().GetSettings(gomock.Any()).Return(financeDto.SettingsResponse{}, nil)
				f.finance.EXPECT().NextInvoiceNumber(gomock.Any()).Return(financeDto.InvoiceNumberResponse{}, failure.NotFound("no active financial year"))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "insert error",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().GetByBookingNumber(gomock.Any(), req.Booking.BookingNumber).Return(model.Invoice{}, nil)
				f.finance.EXPECT().GetSettings(gomock.Any()).Return(financeDto.SettingsResponse{}, nil)
				f.finance.EXPECT().NextInvoiceNumber(gomock.Any()).Return(financeDto.InvoiceNumberResponse{InvoiceNumber: "INV/25-26/6"}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("mongo down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Issue(context.Background(), req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.InvoiceNumber)
		})
	}
}

func TestInvoiceService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetByNumber(gomock.Any(), "INV/25-26/3").Return(model.Invoice{ID: "inv-1", InvoiceNumber: "INV/25-26/3"}, nil)

		res, err := f.svc.Get(context.Background(), "INV/25-26/3")

		require.NoError(t, err)
		assert.Equal(t, "inv-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetByNumber(gomock.Any(), "INV/25-26/9").Return(model.Invoice{}, nil)

		_, err := f.svc.Get(context.Background(), "INV/25-26/9")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestInvoiceService_GetAll(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Count(gomock.Any(), "").Return(11, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), "").Return([]model.Invoice{{ID: "inv-1"}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 2, Limit: 10}, "")

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Invoices, 1)
}
