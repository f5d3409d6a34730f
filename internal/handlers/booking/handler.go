package booking

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/service"
	paymentDto "hotelier/internal/domains/payment/model/dto"
	paymentService "hotelier/internal/domains/payment/service"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/validator"
	"hotelier/transport/http/response"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryParamFrom = "from"
	queryParamTo   = "to"
)

type Handler struct {
	service service.Booking
	payment paymentService.Payment
	otel    otel.Otel
}

func New(service service.Booking, payment paymentService.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		payment: payment,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/addbooking", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{bookingNumber}", handler.GetBooking)
		routerGroup.Put("/{bookingNumber}", handler.TransitionBooking)
		routerGroup.Delete("/{bookingNumber}", handler.DeleteBooking)

		routerGroup.Post("/create-razorpay-order", handler.CreateOrder)
		routerGroup.Post("/create-razorpay-payment-link", handler.CreatePaymentLink)
		routerGroup.Post("/verify-razorpay-payment", handler.VerifyPayment)
		routerGroup.Get("/check-payment-status/{paymentLinkId}", handler.CheckPaymentStatus)
	})
}

// CreateBooking creates a booking and reports its side effects.
// @Summary Create a booking
// @Description Persist a room or hall booking, reserve units and record the initial payment.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.WriteResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/addbooking [post]
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking " + res.Booking.BookingNumber + " created")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetBookings lists bookings after checking out overdue stays.
// @Summary Get all bookings
// @Tags Booking
// @Produce json
// @Param status query string false "Filter by status"
// @Param property_type query string false "Filter by property type"
// @Param email query string false "Filter by guest email"
// @Param from query string false "Check-in on or after (YYYY-MM-DD)"
// @Param to query string false "Check-out on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup, err := bookingFilter(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBooking retrieves a booking by number.
// @Summary Get a booking
// @Tags Booking
// @Produce json
// @Param bookingNumber path string true "Booking number"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{bookingNumber} [get]
// @Security BearerAuth
func (handler *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBooking")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamBookingNumber))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// TransitionBooking changes status, payment status, guest verification or hall details.
// @Summary Update a booking
// @Description Accepts JSON, or multipart with a JSON "data" part and verification "files".
// @Tags Booking
// @Accept json,mpfd
// @Produce json
// @Param bookingNumber path string true "Booking number"
// @Param request body dto.TransitionRequest true "Transition Request"
// @Success 200 {object} response.Data[dto.WriteResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{bookingNumber} [put]
// @Security BearerAuth
func (handler *Handler) TransitionBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TransitionBooking")
	defer scope.End()

	req, err := transitionRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Transition(ctx, chi.URLParam(r, constant.RequestParamBookingNumber), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteBooking removes a booking and its uploaded files.
// @Summary Delete a booking
// @Tags Booking
// @Produce json
// @Param bookingNumber path string true "Booking number"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{bookingNumber} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamBookingNumber)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}

// CreateOrder opens a gateway order for online checkout.
// @Summary Create a Razorpay order
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body paymentDto.CreateOrderRequest true "Create Order Request"
// @Success 201 {object} response.Data[paymentDto.OrderResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/create-razorpay-order [post]
func (handler *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOrder")
	defer scope.End()

	req := paymentDto.CreateOrderRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	order, err := handler.payment.CreateOrder(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create order")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, order)
}

// CreatePaymentLink creates a hosted payment link.
// @Summary Create a Razorpay payment link
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body paymentDto.CreatePaymentLinkRequest true "Create Payment Link Request"
// @Success 201 {object} response.Data[paymentDto.PaymentLinkResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/create-razorpay-payment-link [post]
func (handler *Handler) CreatePaymentLink(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePaymentLink")
	defer scope.End()

	req := paymentDto.CreatePaymentLinkRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	link, err := handler.payment.CreatePaymentLink(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create payment link")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, link)
}

// VerifyPayment checks the gateway signature of a completed checkout.
// @Summary Verify a Razorpay payment
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body paymentDto.VerifyPaymentRequest true "Verify Payment Request"
// @Success 200 {object} response.Data[paymentDto.VerifyPaymentResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/verify-razorpay-payment [post]
func (handler *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifyPayment")
	defer scope.End()

	req := paymentDto.VerifyPaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.payment.VerifyPayment(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CheckPaymentStatus reports the state of a payment link.
// @Summary Check payment link status
// @Tags Booking
// @Produce json
// @Param paymentLinkId path string true "Payment link ID"
// @Success 200 {object} response.Data[paymentDto.PaymentStatusResponse]
// @Failure 500 {object} response.Error
// @Router /v1/bookings/check-payment-status/{paymentLinkId} [get]
func (handler *Handler) CheckPaymentStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckPaymentStatus")
	defer scope.End()

	res, err := handler.payment.CheckPaymentStatus(ctx, chi.URLParam(r, constant.RequestParamPaymentLinkID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check payment status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func bookingFilter(r *http.Request) (gDto.FilterGroup, error) {
	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status := query.Get(model.FieldStatus); status != "" {
		if err := validator.ValidateVar(status, "oneof=booked checkin checkout cancelled"); err != nil {
			return filterGroup, err
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: status, Table: model.TableName,
		})
	}

	if propertyType := query.Get(model.FieldPropertyType); propertyType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field: model.FieldPropertyType, Operator: gDto.FilterOperatorEq, Value: propertyType, Table: model.TableName,
		})
	}

	if email := query.Get(model.FieldEmail); email != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field: model.FieldEmail, Operator: gDto.FilterOperatorLike, Value: email, Table: model.TableName,
		})
	}

	for _, bound := range []struct {
		param    string
		field    string
		operator string
	}{
		{queryParamFrom, model.FieldCheckIn, gDto.FilterOperatorGreaterEq},
		{queryParamTo, model.FieldCheckOut, gDto.FilterOperatorLessEq},
	} {
		value := query.Get(bound.param)
		if value == "" {
			continue
		}

		if err := validator.ValidateVar(value, "datetime="+constant.DayFormat); err != nil {
			return filterGroup, failure.BadRequestFromString(bound.param + " must be a YYYY-MM-DD date") // nolint:wrapcheck
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName: bound.param, Field: bound.field, Operator: bound.operator, Value: value, Table: model.TableName,
		})
	}

	return filterGroup, nil
}

// transitionRequest reads either a JSON body or a multipart form whose "data" part holds the JSON fields.
func transitionRequest(r *http.Request) (dto.TransitionRequest, error) {
	req := dto.TransitionRequest{}

	if !strings.HasPrefix(r.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeMultipartFormData) {
		return req, validator.Validate(r.Body, &req)
	}

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return req, failure.BadRequest(err) // nolint:wrapcheck
	}

	if payload := r.FormValue(constant.FormPayload); payload != "" {
		if err := validator.Validate(strings.NewReader(payload), &req); err != nil {
			return req, err
		}
	}

	if r.MultipartForm != nil {
		req.Files = r.MultipartForm.File[constant.FormFiles]
	}

	return req, validator.ValidateStruct(&req)
}
