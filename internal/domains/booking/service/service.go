package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/mailer"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/infras/s3"
	availabilityDto "hotelier/internal/domains/availability/model/dto"
	availabilityService "hotelier/internal/domains/availability/service"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/repository"
	financeService "hotelier/internal/domains/finance/service"
	guestDto "hotelier/internal/domains/guest/model/dto"
	guestService "hotelier/internal/domains/guest/service"
	inventoryService "hotelier/internal/domains/inventory/service"
	invoiceDto "hotelier/internal/domains/invoice/model/dto"
	invoiceService "hotelier/internal/domains/invoice/service"
	paymentService "hotelier/internal/domains/payment/service"
	roomDto "hotelier/internal/domains/room/model/dto"
	roomService "hotelier/internal/domains/room/service"
	txnModel "hotelier/internal/domains/transaction/model"
	txnDto "hotelier/internal/domains/transaction/model/dto"
	txnRepository "hotelier/internal/domains/transaction/repository"
	txnService "hotelier/internal/domains/transaction/service"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	defaultNumberRetries = 5
	fileDirectory        = "bookings"

	diagnosticEmail       = "email"
	diagnosticEvent       = "event"
	diagnosticInventory   = "inventory"
	diagnosticInvoice     = "invoice"
	diagnosticTransaction = "transaction"
	diagnosticUnit        = "unit"
	diagnosticRelease     = "release"

	savepointOccupancy = "booking_occupancy"
)

var (
	errDuplicateNumber = errors.New("booking number already taken")
	errUnitMissing     = errors.New("unit does not exist")
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.WriteResponse, error)
	Get(ctx context.Context, bookingNumber string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Transition(ctx context.Context, bookingNumber string, req dto.TransitionRequest) (dto.WriteResponse, error)
	Delete(ctx context.Context, bookingNumber string) error
	Sweep(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo         repository.Booking
	txnRepo      txnRepository.Transaction
	transactor   postgres.Transactor
	guest        guestService.Guest
	room         roomService.Room
	availability availabilityService.Availability
	transaction  txnService.Transaction
	invoice      invoiceService.Invoice
	inventory    inventoryService.Inventory
	payment      paymentService.Payment
	finance      financeService.Finance
	mailer       mailer.Mailer
	kafka        kafka.Client
	s3           s3.S3
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	txnRepo txnRepository.Transaction,
	transactor postgres.Transactor,
	guest guestService.Guest,
	room roomService.Room,
	availability availabilityService.Availability,
	transaction txnService.Transaction,
	invoice invoiceService.Invoice,
	inventory inventoryService.Inventory,
	payment paymentService.Payment,
	finance financeService.Finance,
	mailer mailer.Mailer,
	kafka kafka.Client,
	s3 s3.S3,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		txnRepo:      txnRepo,
		transactor:   transactor,
		guest:        guest,
		room:         room,
		availability: availability,
		transaction:  transaction,
		invoice:      invoice,
		inventory:    inventory,
		payment:      payment,
		finance:      finance,
		mailer:       mailer,
		kafka:        kafka,
		s3:           s3,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func byNumber(bookingNumber string) gDto.FilterGroup {
	return shared.FilterByFields(model.TableName, gDto.Filter{Field: model.FieldBookingNumber, Value: bookingNumber})
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.WriteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if field := req.MissingField(); field != constant.Empty {
		return res, failure.BadRequestFromString(field + " is required") // nolint:wrapcheck
	}

	checkIn, checkOut, err := req.Stay()
	if err != nil {
		return res, failure.BadRequestFromString("check_in and check_out must be dates") // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return res, failure.BadRequestFromString("check_out must be after check_in") // nolint:wrapcheck
	}

	if req.PaymentMethod == dto.PaymentMethodPaymentLink {
		if err = s.ensureLinkPaid(ctx, req.PaymentLinkID); err != nil {
			return res, err
		}
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	retries := s.cfg.Finance.BookingNumberRetries
	if retries <= 0 {
		retries = defaultNumberRetries
	}

	var (
		booking     model.Booking
		diagnostics dto.Diagnostics
	)

	for attempt := 1; attempt <= retries; attempt++ {
		booking, diagnostics, err = s.createTx(ctx, req, user, checkIn, checkOut)
		if !errors.Is(err, errDuplicateNumber) {
			break
		}

		log.Warn().Int("attempt", attempt).Msg("booking number taken, retrying")
	}

	if errors.Is(err, errDuplicateNumber) {
		return res, failure.Conflict("could not allocate a unique booking number") // nolint:wrapcheck
	}

	if err != nil {
		return res, err
	}

	s.invalidate(ctx, constant.Empty)
	s.invalidateRooms(ctx)

	s.seedTransaction(ctx, req, &booking, &diagnostics)
	res.EmailSent = s.notify(ctx, booking, mailer.TemplateBookingConfirmation, "Booking confirmed", &diagnostics)
	diagnostics.Record(diagnosticEvent, s.publish(ctx, constant.TopicBookingCreated, dto.NewEvent(booking, constant.Empty, timezone.Now())))

	res.Booking.FromModel(booking)
	res.Diagnostics = diagnostics

	return res, nil
}

func (s *serviceImpl) ensureLinkPaid(ctx context.Context, paymentLinkID string) error {
	if paymentLinkID == constant.Empty {
		return failure.BadRequestFromString("payment_link_id is required for paymentLink bookings") // nolint:wrapcheck
	}

	paid, err := s.payment.IsPaymentLinkPaid(ctx, paymentLinkID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !paid {
		return failure.BadRequestFromString("payment link is not paid") // nolint:wrapcheck
	}

	return nil
}

// createTx writes the booking, its guest, unit booked dates and availability in one transaction.
func (s *serviceImpl) createTx(
	ctx context.Context,
	req dto.CreateBookingRequest,
	user string,
	checkIn, checkOut time.Time,
) (booking model.Booking, diagnostics dto.Diagnostics, err error) {
	err = s.transactor.WithTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		diagnostics = nil

		prefix := model.DailyPrefix(timezone.Now())

		latest, err := s.repo.LatestNumber(ctx, sqltx, prefix)
		if err != nil {
			log.Error().Err(err).Msg("failed to get latest booking number")

			return fmt.Errorf("failed to get latest booking number: %w", err)
		}

		number := model.NextNumber(prefix, latest)

		guest, err := s.guest.ResolveTx(ctx, sqltx, guestDto.ResolveGuestRequest{
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			Email:         req.Email,
			Mobile:        req.Mobile,
			BookingNumber: number,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}

		booking = req.ToModel(user, number, guest.GuestID, checkIn, checkOut)

		if err = s.repo.InsertTx(ctx, sqltx, booking); err != nil {
			if shared.IsUniqueViolation(err) {
				return errDuplicateNumber
			}

			log.Error().Err(err).Msg("failed to create booking")

			return fmt.Errorf("failed to create booking: %w", err)
		}

		for _, line := range booking.Rooms.V {
			found, err := s.room.ReserveUnitTx(ctx, sqltx, roomDto.ReserveUnitRequest{
				RoomID:        line.RoomID,
				RoomNumber:    line.RoomNumber,
				BookingNumber: number,
				CheckIn:       checkIn,
				CheckOut:      checkOut,
				Adults:        booking.Adults,
				Children:      booking.Children,
			})
			if err != nil {
				return err //nolint:wrapcheck
			}

			if !found {
				diagnostics.Skip(diagnosticUnit+" "+line.RoomNumber, errUnitMissing.Error())

				continue
			}

			if err = s.availability.UpsertTx(ctx, sqltx, availabilityRequest(booking, line)); err != nil {
				return err //nolint:wrapcheck
			}
		}

		return nil
	})

	return booking, diagnostics, err //nolint:wrapcheck
}

func availabilityRequest(booking model.Booking, line model.RoomLine) availabilityDto.UpsertAvailabilityRequest {
	return availabilityDto.UpsertAvailabilityRequest{
		RoomID:        line.RoomID,
		RoomNumber:    line.RoomNumber,
		BookingNumber: booking.BookingNumber,
		Status:        booking.Status,
		CheckIn:       booking.CheckIn,
		CheckOut:      booking.CheckOut,
		GuestName:     booking.GuestName(),
		GuestEmail:    booking.Email,
		GuestMobile:   booking.Mobile,
	}
}

// seedTransaction records the initial payment, or the full total when the booking arrives already paid.
func (s *serviceImpl) seedTransaction(ctx context.Context, req dto.CreateBookingRequest, booking *model.Booking, diagnostics *dto.Diagnostics) {
	payment := txnDto.RecordPaymentRequest{
		BookingNumber:    booking.BookingNumber,
		Method:           booking.PaymentMethod,
		Reference:        booking.BookingNumber,
		GatewayPaymentID: booking.GatewayPaymentID,
		PaymentLinkID:    booking.PaymentLinkID,
		QRCodeID:         booking.QRCodeID,
	}

	switch {
	case req.InitialPayment != nil:
		payment.Amount = req.InitialPayment.Amount
		payment.PaymentType = req.InitialPayment.PaymentType

		if req.InitialPayment.Reference != constant.Empty {
			payment.Reference = req.InitialPayment.Reference
		}
	case booking.PaymentStatus == model.PaymentStatusCompleted && booking.Total > 0:
		payment.Amount = float64(booking.Total)
		payment.PaymentType = txnModel.PaymentTypeFull
	default:
		return
	}

	paidAt := timezone.Now()
	payment.PaidAt = &paidAt

	txn, err := s.transaction.RecordPayment(ctx, payment)
	if err != nil {
		log.Warn().Err(err).Str("bookingNumber", booking.BookingNumber).Msg("failed to record initial payment")
	} else if txn.IsFullyPaid {
		booking.PaymentStatus = model.PaymentStatusCompleted
	}

	diagnostics.Record(diagnosticTransaction, err)
}

func (s *serviceImpl) Get(ctx context.Context, bookingNumber string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(constant.CacheKeyBookingGet, bookingNumber)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.find(ctx, bookingNumber)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, bookingNumber string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, byNumber(bookingNumber))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// GetAll sweeps overdue bookings before listing so the page never shows a stay that has already ended as open.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	swept, err := s.Sweep(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to sweep overdue bookings")
	}

	cacheKey := shared.BuildCacheKeyWithQuery(constant.CacheKeyBookingGetAll, req, filter)

	if swept == 0 {
		if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
			log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

			return res, nil
		}
	}

	total, err := s.count(ctx, req, filter, swept == 0)
	if err != nil {
		return res, err
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, cached bool) (total int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(constant.CacheKeyBookingCount, req, filter)

	if cached {
		if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
			return total, nil
		}
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return total, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Transition(ctx context.Context, bookingNumber string, req dto.TransitionRequest) (res dto.WriteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("nothing to update") // nolint:wrapcheck
	}

	booking, err := s.find(ctx, bookingNumber)
	if err != nil {
		return res, err
	}

	if req.Status != constant.Empty && !booking.CanTransition(req.Status) {
		return res, failure.BadRequestFromString(fmt.Sprintf("cannot move booking from %s to %s", booking.Status, req.Status)) // nolint:wrapcheck
	}

	uploaded, err := s.uploadFiles(ctx, bookingNumber, req.Files)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	previous := booking.Status
	fields := req.Apply(user, &booking, uploaded, timezone.Now())
	changed := booking.Status != previous

	var diagnostics dto.Diagnostics

	err = s.transactor.WithTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		diagnostics = nil

		if changed {
			s.occupyTx(ctx, sqltx, booking, &diagnostics)
		}

		if err := s.repo.UpdateTx(ctx, sqltx, fields, byNumber(bookingNumber)); err != nil {
			log.Error().Err(err).Msg("failed to update booking")

			return fmt.Errorf("failed to update booking: %w", err)
		}

		return nil
	})
	if err != nil {
		s.deleteFiles(ctx, uploaded)

		return res, err //nolint:wrapcheck
	}

	s.invalidate(ctx, bookingNumber)

	if changed {
		s.invalidateRooms(ctx)

		res.EmailSent = s.afterStatusChange(ctx, &booking, previous, &diagnostics)
	}

	res.Booking.FromModel(booking)
	res.Diagnostics = diagnostics

	return res, nil
}

// occupyTx mirrors the booking's status onto every line's availability history and frees the units on
// checkout or cancellation. Each write runs under its own savepoint, so a failing line is reported in
// diagnostics and never blocks the status update.
func (s *serviceImpl) occupyTx(ctx context.Context, sqltx *sqlx.Tx, booking model.Booking, diagnostics *dto.Diagnostics) {
	for _, line := range booking.Rooms.V {
		name := diagnosticUnit + " " + line.RoomNumber

		err := s.transactor.Savepoint(ctx, sqltx, savepointOccupancy, func(ctx context.Context, sqltx *sqlx.Tx) error {
			exists, err := s.room.UnitExistsTx(ctx, sqltx, line.RoomID, line.RoomNumber)
			if err != nil {
				return err //nolint:wrapcheck
			}

			if !exists {
				return errUnitMissing
			}

			return s.availability.UpsertTx(ctx, sqltx, availabilityRequest(booking, line)) //nolint:wrapcheck
		})

		switch {
		case errors.Is(err, errUnitMissing):
			diagnostics.Skip(name, err.Error())
		case err != nil:
			log.Warn().Err(err).Str("bookingNumber", booking.BookingNumber).Str("roomNumber", line.RoomNumber).Msg("failed to update room availability")
			diagnostics.Record(name, err)
		}
	}

	if booking.Status != model.StatusCheckout && booking.Status != model.StatusCancelled {
		return
	}

	err := s.transactor.Savepoint(ctx, sqltx, savepointOccupancy, func(ctx context.Context, sqltx *sqlx.Tx) error {
		return s.room.ReleaseUnitsTx(ctx, sqltx, booking.BookingNumber) //nolint:wrapcheck
	})
	if err != nil {
		log.Warn().Err(err).Str("bookingNumber", booking.BookingNumber).Msg("failed to release room units")
		diagnostics.Record(diagnosticRelease, err)
	}
}

func (s *serviceImpl) afterStatusChange(ctx context.Context, booking *model.Booking, previous string, diagnostics *dto.Diagnostics) (emailSent bool) {
	switch booking.Status {
	case model.StatusCheckin:
		_, err := s.inventory.ConsumeForCheckin(ctx, booking.BookingNumber, booking.RoomIDs())
		if err != nil {
			log.Warn().Err(err).Str("bookingNumber", booking.BookingNumber).Msg("failed to consume complementary items")
		}

		diagnostics.Record(diagnosticInventory, err)
	case model.StatusCancelled:
		emailSent = s.notify(ctx, *booking, mailer.TemplateBookingCancellation, "Booking cancelled", diagnostics)
	case model.StatusCheckout:
		s.issueInvoice(ctx, booking, diagnostics)
	}

	diagnostics.Record(diagnosticEvent, s.publish(ctx, constant.TopicBookingStatusChanged, dto.NewEvent(*booking, previous, timezone.Now())))

	return emailSent
}

// issueInvoice archives the invoice of a checked-out booking once it is fully paid, then links it to the booking.
func (s *serviceImpl) issueInvoice(ctx context.Context, booking *model.Booking, diagnostics *dto.Diagnostics) {
	if booking.HasInvoice() {
		diagnostics.Skip(diagnosticInvoice, "invoice already issued")

		return
	}

	if booking.PaymentStatus != model.PaymentStatusCompleted {
		diagnostics.Skip(diagnosticInvoice, "payment not completed")

		return
	}

	txn, err := s.txnRepo.Get(ctx, shared.FilterByFields(txnModel.TableName, gDto.Filter{Field: txnModel.FieldBookingNumber, Value: booking.BookingNumber}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking transaction")
		diagnostics.Record(diagnosticInvoice, err)

		return
	}

	if txn.ID == constant.Empty || !txn.IsFullyPaid {
		diagnostics.Skip(diagnosticInvoice, "transaction not fully paid")

		return
	}

	invoice, err := s.invoice.Issue(ctx, invoiceDto.IssueRequest{Booking: *booking, Transaction: txn})
	if err != nil {
		log.Warn().Err(err).Str("bookingNumber", booking.BookingNumber).Msg("failed to issue invoice")
		diagnostics.Record(diagnosticInvoice, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields := map[string]any{
		model.FieldInvoiceNumber: invoice.InvoiceNumber,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	filter := shared.FilterByFields(model.TableName,
		gDto.Filter{Field: model.FieldBookingNumber, Value: booking.BookingNumber},
		gDto.Filter{Field: model.FieldInvoiceNumber, Operator: gDto.FilterIsNull},
	)

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to link invoice to booking")
		diagnostics.Record(diagnosticInvoice, err)

		return
	}

	booking.InvoiceNumber = &invoice.InvoiceNumber
	diagnostics.Record(diagnosticInvoice, nil)
}

// Sweep checks out every open booking whose stay has ended. A booking whose occupancy update fails is still
// forced to checkout.
func (s *serviceImpl) Sweep(ctx context.Context) (swept int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Sweep")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByFields(model.TableName,
		gDto.Filter{Field: model.FieldStatus, Value: []string{model.StatusBooked, model.StatusCheckin}, Operator: gDto.FilterOperatorIn},
		gDto.Filter{Field: model.FieldCheckOut, Value: now, Operator: gDto.FilterOperatorLessEq},
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to get overdue bookings")

		return 0, fmt.Errorf("failed to get overdue bookings: %w", err)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	for i := range bookings {
		booking := &bookings[i]
		if !booking.Overdue(now) {
			continue
		}

		if err := s.checkout(ctx, user, booking, now); err != nil {
			log.Error().Err(err).Str("bookingNumber", booking.BookingNumber).Msg("failed to sweep booking")

			continue
		}

		swept++
	}

	if swept > 0 {
		log.Info().Int("count", swept).Msg("overdue bookings checked out")
		s.invalidate(ctx, constant.Empty)
		s.invalidateRooms(ctx)
	}

	return swept, nil
}

func (s *serviceImpl) checkout(ctx context.Context, user string, booking *model.Booking, now time.Time) error {
	previous := booking.Status
	fields := dto.CheckoutFields(user, booking, now)

	var diagnostics dto.Diagnostics

	err := s.transactor.WithTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		diagnostics = nil

		s.occupyTx(ctx, sqltx, *booking, &diagnostics)

		return s.repo.UpdateTx(ctx, sqltx, fields, byNumber(booking.BookingNumber)) //nolint:wrapcheck
	})
	if err != nil {
		log.Warn().Err(err).Str("bookingNumber", booking.BookingNumber).Msg("failed to check out booking with occupancy, forcing checkout")

		if err = s.repo.Update(ctx, fields, byNumber(booking.BookingNumber)); err != nil {
			return fmt.Errorf("failed to force booking checkout: %w", err)
		}
	}

	s.issueInvoice(ctx, booking, &diagnostics)
	diagnostics.Record(diagnosticEvent, s.publish(ctx, constant.TopicBookingStatusChanged, dto.NewEvent(*booking, previous, now)))

	for _, diagnostic := range diagnostics {
		if !diagnostic.OK {
			log.Info().Str("bookingNumber", booking.BookingNumber).Str("effect", diagnostic.Name).Str("reason", diagnostic.Reason).Msg("sweep side effect not applied")
		}
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, bookingNumber string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, bookingNumber)
	if err != nil {
		return err
	}

	s.deleteFiles(ctx, booking.VerificationFiles.V)

	if err = s.repo.Delete(ctx, byNumber(bookingNumber)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, bookingNumber)

	return nil
}

func (s *serviceImpl) notify(ctx context.Context, booking model.Booking, template, subject string, diagnostics *dto.Diagnostics) bool {
	hotelName := s.cfg.App.Name

	settings, err := s.finance.GetSettings(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load hotel profile for mail")
	} else if settings.HotelName != constant.Empty {
		hotelName = settings.HotelName
	}

	sent, err := s.mailer.Send(ctx, mailer.Message{
		To:       booking.Email,
		Subject:  subject,
		Template: template,
		Data:     dto.NewMailData(hotelName, booking),
	})

	switch {
	case err != nil:
		log.Warn().Err(err).Str("bookingNumber", booking.BookingNumber).Msg("failed to send booking mail")
		diagnostics.Record(diagnosticEmail, err)
	case !sent:
		diagnostics.Skip(diagnosticEmail, "mail transport not configured")
	default:
		diagnostics.Record(diagnosticEmail, nil)
	}

	return sent
}

func (s *serviceImpl) publish(ctx context.Context, topic string, event dto.Event) error {
	err := s.kafka.SendMessages(context.WithoutCancel(ctx), s.kafka.Topic(topic), kafka.Message{
		Key:   event.BookingNumber,
		Value: event,
	})
	if err != nil {
		log.Warn().Err(err).Str("bookingNumber", event.BookingNumber).Str("topic", topic).Msg("failed to publish booking event")
	}

	return err //nolint:wrapcheck
}

func (s *serviceImpl) uploadFiles(ctx context.Context, bookingNumber string, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))

	for _, header := range files {
		url, err := s.upload(ctx, fileDirectory+"/"+bookingNumber, header)
		if err != nil {
			s.deleteFiles(ctx, urls)

			return nil, err
		}

		urls = append(urls, url)
	}

	return urls, nil
}

func (s *serviceImpl) upload(ctx context.Context, directory string, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("failed to open verification file")

		return constant.Empty, failure.BadRequestFromString("failed to read uploaded file") // nolint:wrapcheck
	}
	defer file.Close()

	objectName := uuid.NewString() + "-" + shared.SanitizeFileName(header.Filename)
	contentType := header.Header.Get(constant.RequestHeaderContentType)

	url, err := s.s3.UploadFile(ctx, directory, objectName, contentType, file)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload verification file")

		return constant.Empty, fmt.Errorf("failed to upload verification file: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) deleteFiles(ctx context.Context, urls []string) {
	for _, url := range urls {
		objectKey := s.s3.GetObjectKeyFromURL(url)
		if objectKey == constant.Empty {
			continue
		}

		if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
			log.Warn().Err(err).Str("key", objectKey).Msg("failed to delete verification file")
		}
	}
}

// invalidate drops list caches and, when bookingNumber is set, that booking's cached detail.
// invalidateRooms drops room caches once occupancy writes have committed.
func (s *serviceImpl) invalidateRooms(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CacheKeyRoomGet)
		shared.InvalidateCaches(c, s.cache, constant.CacheKeyRoomGetAll)
		shared.InvalidateCaches(c, s.cache, constant.CacheKeyRoomCount)
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, bookingNumber string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if bookingNumber == constant.Empty {
			shared.InvalidateCaches(c, s.cache, constant.CacheKeyBookingGet)
		} else if err := s.cache.Delete(c, shared.BuildCacheKey(constant.CacheKeyBookingGet, bookingNumber)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, constant.CacheKeyBookingGetAll)
		shared.InvalidateCaches(c, s.cache, constant.CacheKeyBookingCount)
	}()
}
