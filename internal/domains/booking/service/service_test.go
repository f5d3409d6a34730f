package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	kafkaMocks "hotelier/infras/kafka/mocks"
	"hotelier/infras/mailer"
	mailerMocks "hotelier/infras/mailer/mocks"
	"hotelier/infras/otel/mocks"
	pgMocks "hotelier/infras/postgres/mocks"
	s3Mocks "hotelier/infras/s3/mocks"
	availabilityMocks "hotelier/internal/domains/availability/mocks"
	availabilityDto "hotelier/internal/domains/availability/model/dto"
	bookingMocks "hotelier/internal/domains/booking/mocks"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/service"
	financeMocks "hotelier/internal/domains/finance/mocks"
	financeDto "hotelier/internal/domains/finance/model/dto"
	guestMocks "hotelier/internal/domains/guest/mocks"
	guestDto "hotelier/internal/domains/guest/model/dto"
	inventoryMocks "hotelier/internal/domains/inventory/mocks"
	inventoryDto "hotelier/internal/domains/inventory/model/dto"
	invoiceMocks "hotelier/internal/domains/invoice/mocks"
	invoiceDto "hotelier/internal/domains/invoice/model/dto"
	paymentMocks "hotelier/internal/domains/payment/mocks"
	roomMocks "hotelier/internal/domains/room/mocks"
	roomDto "hotelier/internal/domains/room/model/dto"
	txnMocks "hotelier/internal/domains/transaction/mocks"
	txnModel "hotelier/internal/domains/transaction/model"
	txnDto "hotelier/internal/domains/transaction/model/dto"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
)

type fixture struct {
	repo         *bookingMocks.MockBooking
	txnRepo      *txnMocks.MockTransaction
	guest        *guestMocks.MockGuestService
	room         *roomMocks.MockRoomService
	availability *availabilityMocks.MockAvailabilityService
	transaction  *txnMocks.MockTransactionService
	invoice      *invoiceMocks.MockInvoiceService
	inventory    *inventoryMocks.MockInventoryService
	payment      *paymentMocks.MockPaymentService
	finance      *financeMocks.MockFinanceService
	mailer       *mailerMocks.MockMailer
	kafka        *kafkaMocks.MockClient
	s3           *s3Mocks.MockS3
	cache        *cacheMocks.MockRedisCache
	svc          service.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:         bookingMocks.NewMockBooking(ctrl),
		txnRepo:      txnMocks.NewMockTransaction(ctrl),
		guest:        guestMocks.NewMockGuestService(ctrl),
		room:         roomMocks.NewMockRoomService(ctrl),
		availability: availabilityMocks.NewMockAvailabilityService(ctrl),
		transaction:  txnMocks.NewMockTransactionService(ctrl),
		invoice:      invoiceMocks.NewMockInvoiceService(ctrl),
		inventory:    inventoryMocks.NewMockInventoryService(ctrl),
		payment:      paymentMocks.NewMockPaymentService(ctrl),
		finance:      financeMocks.NewMockFinanceService(ctrl),
		mailer:       mailerMocks.NewMockMailer(ctrl),
		kafka:        kafkaMocks.NewMockClient(ctrl),
		s3:           s3Mocks.NewMockS3(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.App.Name = "Hotelier"
	cfg.Finance.BookingNumberRetries = 2

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.kafka.EXPECT().Topic(gomock.Any()).DoAndReturn(func(name string) string { return name }).AnyTimes()

	f.svc = service.New(
		f.repo,
		f.txnRepo,
		pgMocks.NewTransactor(),
		f.guest,
		f.room,
		f.availability,
		f.transaction,
		f.invoice,
		f.inventory,
		f.payment,
		f.finance,
		f.mailer,
		f.kafka,
		f.s3,
		cfg,
		f.cache,
		mocks.NewOtel(),
	)

	return f
}

func (f *fixture) expectUnits() {
	f.room.EXPECT().UnitExistsTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
}

func (f *fixture) expectEvent(topic string) {
	f.kafka.EXPECT().SendMessages(gomock.Any(), topic, gomock.Any()).Return(nil)
}

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		FirstName:     "Asha",
		LastName:      "Rao",
		Email:         "Asha@Guest.test",
		Mobile:        "9000000001",
		CheckIn:       "2026-11-01",
		CheckOut:      "2026-11-03",
		Adults:        2,
		PaymentMethod: "cash",
		PaymentStatus: model.PaymentStatusCompleted,
		Rooms: []dto.RoomLineRequest{
			{RoomID: "room-1", RoomType: "Deluxe", RoomNumber: "101", Price: 899.5, Tax: 100.49, Total: 1000},
			{RoomID: "room-1", RoomType: "Deluxe", RoomNumber: "999", Price: 0, Total: 0},
		},
		RoomCharge: 999.5,
		Taxes:      -0.5,
		Total:      1000,
	}
}

func diagnostic(diagnostics dto.Diagnostics, name string) (dto.Diagnostic, bool) {
	for _, d := range diagnostics {
		if d.Name == name {
			return d, true
		}
	}

	return dto.Diagnostic{}, false
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       func() dto.CreateBookingRequest
		setupMock func(f *fixture)
		wantCode  int
		wantMsg   string
		assertRes func(t *testing.T, res dto.WriteResponse)
	}{
		{
			name: "first missing field is reported",
			req: func() dto.CreateBookingRequest {
				req := validRequest()
				req.Email = ""
				req.CheckIn = ""

				return req
			},
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "email is required",
		},
		{
			name: "check out before check in",
			req: func() dto.CreateBookingRequest {
				req := validRequest()
				req.CheckOut = "2026-10-30"

				return req
			},
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "check_out must be after check_in",
		},
		{
			name: "unpaid payment link",
			req: func() dto.CreateBookingRequest {
				req := validRequest()
				req.PaymentMethod = dto.PaymentMethodPaymentLink
				req.PaymentLinkID = "plink_1"

				return req
			},
			setupMock: func(f *fixture) {
				f.payment.EXPECT().IsPaymentLinkPaid(gomock.Any(), "plink_1").Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "payment link is not paid",
		},
		{
			name: "booking number stays taken",
			req:  validRequest,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().LatestNumber(gomock.Any(), gomock.Any(), gomock.Any()).Return("", nil).Times(2)
				f.guest.EXPECT().ResolveTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(guestDto.GuestResponse{GuestID: "G1"}, nil).Times(2)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation}).Times(2)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unit lookup failure aborts",
			req:  validRequest,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().LatestNumber(gomock.Any(), gomock.Any(), gomock.Any()).Return("", nil)
				f.guest.EXPECT().ResolveTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(guestDto.GuestResponse{GuestID: "G1"}, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.room.EXPECT().ReserveUnitTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "created after a number collision",
			req:  validRequest,
			setupMock: func(f *fixture) {
				var prefix string

				gomock.InOrder(
					f.repo.EXPECT().LatestNumber(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, _ *sqlx.Tx, p string) (string, error) {
							prefix = p

							return p + "0006", nil
						}),
					f.repo.EXPECT().LatestNumber(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, _ *sqlx.Tx, p string) (string, error) {
							return p + "0007", nil
						}),
				)
				f.guest.EXPECT().ResolveTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(guestDto.GuestResponse{GuestID: "G1"}, nil).Times(2)
				gomock.InOrder(
					f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation}),
					f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
							assert.Equal(t, prefix+"0008", booking.BookingNumber)
							assert.Equal(t, "G1", booking.GuestID)
							assert.Equal(t, "asha@guest.test", booking.Email)
							assert.Equal(t, int64(1000), booking.RoomCharge)
							assert.Equal(t, int64(-1), booking.Taxes)
							assert.Equal(t, int64(900), booking.Rooms.V[0].Price)
							assert.Equal(t, model.StatusBooked, booking.Status)

							return nil
						}),
				)
				gomock.InOrder(
					f.room.EXPECT().ReserveUnitTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, _ *sqlx.Tx, req roomDto.ReserveUnitRequest) (bool, error) {
							assert.Equal(t, "101", req.RoomNumber)

							return true, nil
						}),
					f.room.EXPECT().ReserveUnitTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil),
				)
				f.availability.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *sqlx.Tx, req availabilityDto.UpsertAvailabilityRequest) error {
						assert.Equal(t, "101", req.RoomNumber)
						assert.Equal(t, "Asha Rao", req.GuestName)

						return nil
					})
				f.transaction.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, req txnDto.RecordPaymentRequest) (txnDto.TransactionResponse, error) {
						assert.InDelta(t, 1000, req.Amount, 0.001)
						assert.Equal(t, txnModel.PaymentTypeFull, req.PaymentType)

						return txnDto.TransactionResponse{IsFullyPaid: true}, nil
					})
				f.finance.EXPECT().GetSettings(gomock.Any()).Return(financeDto.SettingsResponse{HotelName: "Lakeview"}, nil)
				f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg mailer.Message) (bool, error) {
					assert.Equal(t, mailer.TemplateBookingConfirmation, msg.Template)
					assert.Equal(t, "Lakeview", msg.Data.(dto.MailData).HotelName)

					return true, nil
				})
				f.expectEvent(constant.TopicBookingCreated)
			},
			assertRes: func(t *testing.T, res dto.WriteResponse) {
				t.Helper()

				assert.True(t, res.EmailSent)
				assert.Len(t, res.Booking.Rooms, 2)

				unit, ok := diagnostic(res.Diagnostics, "unit 999")
				require.True(t, ok)
				assert.False(t, unit.OK)

				for _, name := range []string{"transaction", "email", "event"} {
					d, ok := diagnostic(res.Diagnostics, name)
					require.True(t, ok, name)
					assert.True(t, d.OK, name)
				}
			},
		},
		{
			name: "side effect failures do not fail the booking",
			req: func() dto.CreateBookingRequest {
				req := validRequest()
				req.PaymentStatus = model.PaymentStatusPending
				req.Rooms = req.Rooms[:1]

				return req
			},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().LatestNumber(gomock.Any(), gomock.Any(), gomock.Any()).Return("", nil)
				f.guest.EXPECT().ResolveTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(guestDto.GuestResponse{GuestID: "G1"}, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.room.EXPECT().ReserveUnitTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				f.availability.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.finance.EXPECT().GetSettings(gomock.Any()).Return(financeDto.SettingsResponse{}, errors.New("db down"))
				f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(false, errors.New("smtp down"))
				f.kafka.EXPECT().SendMessages(gomock.Any(), constant.TopicBookingCreated, gomock.Any()).Return(errors.New("broker down"))
			},
			assertRes: func(t *testing.T, res dto.WriteResponse) {
				t.Helper()

				assert.False(t, res.EmailSent)

				_, seeded := diagnostic(res.Diagnostics, "transaction")
				assert.False(t, seeded)

				email, _ := diagnostic(res.Diagnostics, "email")
				assert.Equal(t, "smtp down", email.Reason)

				event, _ := diagnostic(res.Diagnostics, "event")
				assert.False(t, event.OK)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(context.Background(), tt.req())
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, err.Error())
				}

				return
			}

			require.NoError(t, err)
			tt.assertRes(t, res)
		})
	}
}

func openBooking(status, paymentStatus string) model.Booking {
	return model.Booking{
		ID:            "booking-1",
		BookingNumber: "B-011126-0001",
		FirstName:     "Asha",
		LastName:      "Rao",
		Email:         "asha@guest.test",
		CheckIn:       time.Date(2026, 11, 1, 12, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 11, 3, 11, 0, 0, 0, time.UTC),
		Rooms: gModel.NewJSON([]model.RoomLine{
			{RoomID: "room-1", RoomNumber: "101", Total: 1000},
			{RoomID: "room-2", RoomNumber: "201", Total: 500},
		}),
		PaymentStatus:     paymentStatus,
		Total:             1500,
		Status:            status,
		StatusTimestamps:  gModel.NewJSON(map[string]time.Time{model.StatusBooked: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)}),
		VerificationFiles: gModel.NewJSON([]string{}),
	}
}

func TestBookingService_Transition(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.TransitionRequest
		setupMock func(f *fixture)
		wantCode  int
		assertRes func(t *testing.T, res dto.WriteResponse)
	}{
		{
			name:      "empty request",
			req:       dto.TransitionRequest{},
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown booking",
			req:  dto.TransitionRequest{Status: model.StatusCheckin},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "illegal transition",
			req:  dto.TransitionRequest{Status: model.StatusCheckin},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openBooking(model.StatusCheckout, model.PaymentStatusCompleted), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "notes only leave occupancy untouched",
			req:  dto.TransitionRequest{Notes: "late arrival"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openBooking(model.StatusBooked, model.PaymentStatusPending), nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "late arrival", fields[model.FieldNotes])
						assert.NotContains(t, fields, model.FieldStatus)

						return nil
					})
			},
			assertRes: func(t *testing.T, res dto.WriteResponse) {
				t.Helper()

				assert.Empty(t, res.Diagnostics)
				assert.Equal(t, model.StatusBooked, res.Booking.Status)
			},
		},
		{
			name: "check in consumes complementary items",
			req:  dto.TransitionRequest{Status: model.StatusCheckin, IDProofType: "passport"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openBooking(model.StatusBooked, model.PaymentStatusPending), nil)
				f.expectUnits()
				f.availability.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *sqlx.Tx, req availabilityDto.UpsertAvailabilityRequest) error {
						assert.Equal(t, model.StatusCheckin, req.Status)

						return nil
					}).Times(2)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusCheckin, fields[model.FieldStatus])
						assert.Equal(t, "passport", fields[model.FieldIDProofType])

						return nil
					})
				f.inventory.EXPECT().ConsumeForCheckin(gomock.Any(), "B-011126-0001", []string{"room-1", "room-2"}).
					Return(inventoryDto.ConsumeResponse{}, nil)
				f.expectEvent(constant.TopicBookingStatusChanged)
			},
			assertRes: func(t *testing.T, res dto.WriteResponse) {
				t.Helper()

				assert.Equal(t, model.StatusCheckin, res.Booking.Status)
				assert.Contains(t, res.Booking.StatusTimestamps, model.StatusCheckin)

				inventory, ok := diagnostic(res.Diagnostics, "inventory")
				require.True(t, ok)
				assert.True(t, inventory.OK)
			},
		},
		{
			name: "checkout issues the invoice once fully paid",
			req:  dto.TransitionRequest{Status: model.StatusCheckout},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openBooking(model.StatusCheckin, model.PaymentStatusCompleted), nil)
				f.expectUnits()
				f.availability.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
				f.room.EXPECT().ReleaseUnitsTx(gomock.Any(), gomock.Any(), "B-011126-0001").Return(nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.txnRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(txnModel.Transaction{ID: "txn-1", IsFullyPaid: true}, nil)
				f.invoice.EXPECT().Issue(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, req invoiceDto.IssueRequest) (invoiceDto.InvoiceResponse, error) {
						assert.Equal(t, model.StatusCheckout, req.Booking.Status)

						return invoiceDto.InvoiceResponse{InvoiceNumber: "INV/26-27/1"}, nil
					})
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
						assert.Equal(t, "INV/26-27/1", fields[model.FieldInvoiceNumber])
						assert.Len(t, filter.Filters, 2)

						return nil
					})
				f.expectEvent(constant.TopicBookingStatusChanged)
			},
			assertRes: func(t *testing.T, res dto.WriteResponse) {
				t.Helper()

				assert.Equal(t, "INV/26-27/1", res.Booking.InvoiceNumber)

				invoice, _ := diagnostic(res.Diagnostics, "invoice")
				assert.True(t, invoice.OK)
			},
		},
		{
			name: "checkout skips the invoice while payment is pending",
			req:  dto.TransitionRequest{Status: model.StatusCheckout},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openBooking(model.StatusBooked, model.PaymentStatusPending), nil)
				f.expectUnits()
				f.availability.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
				f.room.EXPECT().ReleaseUnitsTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.expectEvent(constant.TopicBookingStatusChanged)
			},
			assertRes: func(t *testing.T, res dto.WriteResponse) {
				t.Helper()

				invoice, _ := diagnostic(res.Diagnostics, "invoice")
				assert.False(t, invoice.OK)
				assert.Equal(t, "payment not completed", invoice.Reason)
				assert.Empty(t, res.Booking.InvoiceNumber)
			},
		},
		{
			name: "cancel releases units and mails the guest",
			req:  dto.TransitionRequest{Status: model.StatusCancelled},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openBooking(model.StatusBooked, model.PaymentStatusPending), nil)
				f.expectUnits()
				f.availability.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
				f.room.EXPECT().ReleaseUnitsTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.finance.EXPECT().GetSettings(gomock.Any()).Return(financeDto.SettingsResponse{HotelName: "Lakeview"}, nil)
				f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg mailer.Message) (bool, error) {
					assert.Equal(t, mailer.TemplateBookingCancellation, msg.Template)
					assert.Equal(t, "asha@guest.test", msg.To)

					return true, nil
				})
				f.expectEvent(constant.TopicBookingStatusChanged)
			},
			assertRes: func(t *testing.T, res dto.WriteResponse) {
				t.Helper()

				assert.True(t, res.EmailSent)
				assert.Equal(t, model.StatusCancelled, res.Booking.Status)
			},
		},
		{
			name: "availability failure on one line still commits the cancellation",
			req:  dto.TransitionRequest{Status: model.StatusCancelled},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openBooking(model.StatusBooked, model.PaymentStatusPending), nil)
				f.expectUnits()
				gomock.InOrder(
					f.availability.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
					f.availability.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23503"}),
				)
				f.room.EXPECT().ReleaseUnitsTx(gomock.Any(), gomock.Any(), "B-011126-0001").Return(nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])

						return nil
					})
				f.finance.EXPECT().GetSettings(gomock.Any()).Return(financeDto.SettingsResponse{HotelName: "Lakeview"}, nil)
				f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(true, nil)
				f.expectEvent(constant.TopicBookingStatusChanged)
			},
			assertRes: func(t *testing.T, res dto.WriteResponse) {
				t.Helper()

				assert.Equal(t, model.StatusCancelled, res.Booking.Status)

				failed, ok := diagnostic(res.Diagnostics, "unit 201")
				require.True(t, ok)
				assert.False(t, failed.OK)

				_, ok = diagnostic(res.Diagnostics, "unit 101")
				assert.False(t, ok)
			},
		},
		{
			name: "missing unit and failed release are reported",
			req:  dto.TransitionRequest{Status: model.StatusCheckout},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openBooking(model.StatusBooked, model.PaymentStatusPending), nil)
				f.room.EXPECT().UnitExistsTx(gomock.Any(), gomock.Any(), "room-1", "101").Return(false, nil)
				f.room.EXPECT().UnitExistsTx(gomock.Any(), gomock.Any(), "room-2", "201").Return(true, nil)
				f.availability.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *sqlx.Tx, req availabilityDto.UpsertAvailabilityRequest) error {
						assert.Equal(t, "201", req.RoomNumber)

						return nil
					})
				f.room.EXPECT().ReleaseUnitsTx(gomock.Any(), gomock.Any(), "B-011126-0001").Return(errors.New("db down"))
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.expectEvent(constant.TopicBookingStatusChanged)
			},
			assertRes: func(t *testing.T, res dto.WriteResponse) {
				t.Helper()

				assert.Equal(t, model.StatusCheckout, res.Booking.Status)

				skipped, ok := diagnostic(res.Diagnostics, "unit 101")
				require.True(t, ok)
				assert.Equal(t, "unit does not exist", skipped.Reason)

				release, ok := diagnostic(res.Diagnostics, "release")
				require.True(t, ok)
				assert.Equal(t, "db down", release.Reason)
			},
		},
		{
			name: "status write failure fails the transition",
			req:  dto.TransitionRequest{Status: model.StatusCheckin},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openBooking(model.StatusBooked, model.PaymentStatusPending), nil)
				f.expectUnits()
				f.availability.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")

			res, err := f.svc.Transition(ctx, "B-011126-0001", tt.req)
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			tt.assertRes(t, res)
		})
	}
}

func TestBookingService_Sweep(t *testing.T) {
	t.Run("forces overdue bookings to checkout", func(t *testing.T) {
		f := newFixture(t)

		first := openBooking(model.StatusCheckin, model.PaymentStatusCompleted)
		second := openBooking(model.StatusBooked, model.PaymentStatusPending)
		second.BookingNumber = "B-011126-0002"
		first.CheckOut = time.Now().Add(-2 * time.Hour)
		second.CheckOut = time.Now().Add(-time.Hour)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{first, second}, nil)

		f.room.EXPECT().UnitExistsTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(4)
		f.availability.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(4)
		f.room.EXPECT().ReleaseUnitsTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
		gomock.InOrder(
			f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down")),
		)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusCheckout, fields[model.FieldStatus])

				return nil
			})

		f.txnRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(txnModel.Transaction{ID: "txn-1", IsFullyPaid: false}, nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), constant.TopicBookingStatusChanged, gomock.Any()).Return(nil).Times(2)

		swept, err := f.svc.Sweep(context.Background())
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 2, swept)
	})

	t.Run("lookup failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		swept, err := f.svc.Sweep(context.Background())

		require.Error(t, err)
		assert.Zero(t, swept)
	})
}

func TestBookingService_GetAll(t *testing.T) {
	f := newFixture(t)

	booking := openBooking(model.StatusBooked, model.PaymentStatusPending)
	booking.CheckOut = time.Now().Add(24 * time.Hour)

	gomock.InOrder(
		f.repo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return(nil, nil),
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{booking}, nil),
	)
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, booking.BookingNumber, res.Bookings[0].BookingNumber)
}

func TestBookingService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "cache hit",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "booking:get:B-011126-0001", gomock.Any()).Return(nil)
			},
		},
		{
			name: "loaded from the repository",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openBooking(model.StatusBooked, model.PaymentStatusPending), nil)
			},
		},
		{
			name: "not found",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Get(context.Background(), "B-011126-0001")
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "not found",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "deletes files best effort",
			setupMock: func(f *fixture) {
				booking := openBooking(model.StatusCheckout, model.PaymentStatusCompleted)
				booking.VerificationFiles = gModel.NewJSON([]string{"https://cdn.test/bookings/a.png", "https://cdn.test/bookings/b.png"})

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
				f.s3.EXPECT().GetObjectKeyFromURL("https://cdn.test/bookings/a.png").Return("bookings/a.png")
				f.s3.EXPECT().GetObjectKeyFromURL("https://cdn.test/bookings/b.png").Return("bookings/b.png")
				f.s3.EXPECT().DeleteFile(gomock.Any(), "bookings/a.png").Return(errors.New("gone"))
				f.s3.EXPECT().DeleteFile(gomock.Any(), "bookings/b.png").Return(nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "repository error",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openBooking(model.StatusBooked, model.PaymentStatusPending), nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), "B-011126-0001")
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}
