//go:build wireinject
// +build wireinject

package di

import (
	"hotelier/config"
	"hotelier/infras/jwt"
	"hotelier/infras/kafka"
	"hotelier/infras/mailer"
	"hotelier/infras/mongo"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/infras/razorpay"
	"hotelier/infras/redis"
	"hotelier/infras/s3"
	"hotelier/permissions"
	"hotelier/shared/cache"
	"hotelier/transport/http"
	"hotelier/transport/http/middleware"
	"hotelier/transport/http/router"

	availabilityRepository "hotelier/internal/domains/availability/repository"
	availabilityService "hotelier/internal/domains/availability/service"
	bankRepository "hotelier/internal/domains/bank/repository"
	bankService "hotelier/internal/domains/bank/service"
	bookingRepository "hotelier/internal/domains/booking/repository"
	bookingService "hotelier/internal/domains/booking/service"
	employeeRepository "hotelier/internal/domains/employee/repository"
	employeeService "hotelier/internal/domains/employee/service"
	expenseRepository "hotelier/internal/domains/expense/repository"
	expenseService "hotelier/internal/domains/expense/service"
	financeRepository "hotelier/internal/domains/finance/repository"
	financeService "hotelier/internal/domains/finance/service"
	guestRepository "hotelier/internal/domains/guest/repository"
	guestService "hotelier/internal/domains/guest/service"
	inventoryRepository "hotelier/internal/domains/inventory/repository"
	inventoryService "hotelier/internal/domains/inventory/service"
	invoiceRepository "hotelier/internal/domains/invoice/repository"
	invoiceService "hotelier/internal/domains/invoice/service"
	ledgerRepository "hotelier/internal/domains/ledger/repository"
	ledgerService "hotelier/internal/domains/ledger/service"
	paymentRepository "hotelier/internal/domains/payment/repository"
	paymentService "hotelier/internal/domains/payment/service"
	policyRepository "hotelier/internal/domains/policy/repository"
	policyService "hotelier/internal/domains/policy/service"
	roomRepository "hotelier/internal/domains/room/repository"
	roomService "hotelier/internal/domains/room/service"
	transactionRepository "hotelier/internal/domains/transaction/repository"
	transactionService "hotelier/internal/domains/transaction/service"

	bankHandler "hotelier/internal/handlers/bank"
	bookingHandler "hotelier/internal/handlers/booking"
	employeeHandler "hotelier/internal/handlers/employee"
	expenseHandler "hotelier/internal/handlers/expense"
	financeHandler "hotelier/internal/handlers/finance"
	guestHandler "hotelier/internal/handlers/guest"
	inventoryHandler "hotelier/internal/handlers/inventory"
	invoiceHandler "hotelier/internal/handlers/invoice"
	ledgerHandler "hotelier/internal/handlers/ledger"
	policyHandler "hotelier/internal/handlers/policy"
	roomHandler "hotelier/internal/handlers/room"
	transactionHandler "hotelier/internal/handlers/transaction"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	mongo.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	mailer.New,
	razorpay.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var expenseDomain = wire.NewSet(
	expenseRepository.New,
	expenseService.New,
)

var ledgerDomain = wire.NewSet(
	ledgerRepository.New,
	ledgerRepository.NewEntry,
	ledgerService.New,
)

var bankDomain = wire.NewSet(
	bankRepository.New,
	bankRepository.NewEntry,
	bankService.New,
)

var inventoryDomain = wire.NewSet(
	inventoryRepository.New,
	inventoryRepository.NewRule,
	inventoryRepository.NewConsumption,
	inventoryService.New,
)

var financeDomain = wire.NewSet(
	financeRepository.New,
	financeRepository.NewYear,
	financeService.New,
)

var invoiceDomain = wire.NewSet(
	invoiceRepository.New,
	invoiceService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityRepository.New,
	availabilityRepository.NewHistory,
	availabilityService.New,
)

var transactionDomain = wire.NewSet(
	transactionRepository.New,
	transactionService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomRepository.NewUnit,
	roomRepository.NewBookedDate,
	roomService.New,
)

var guestDomain = wire.NewSet(
	guestRepository.New,
	guestService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var policyDomain = wire.NewSet(
	policyRepository.New,
	policyService.New,
)

var employeeDomain = wire.NewSet(
	employeeRepository.New,
	employeeRepository.NewShift,
	employeeService.New,
	employeeService.NewShift,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

// bookingDomains is everything the booking orchestrator depends on.
var bookingDomains = wire.NewSet(
	inventoryDomain,
	financeDomain,
	invoiceDomain,
	availabilityDomain,
	transactionDomain,
	roomDomain,
	guestDomain,
	paymentDomain,
	bookingDomain,
)

var domains = wire.NewSet(
	expenseDomain,
	ledgerDomain,
	bankDomain,
	policyDomain,
	employeeDomain,
	bookingDomains,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	roomHandler.New,
	guestHandler.New,
	bankHandler.New,
	ledgerHandler.New,
	transactionHandler.New,
	invoiceHandler.New,
	financeHandler.New,
	inventoryHandler.New,
	policyHandler.New,
	employeeHandler.New,
	expenseHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeCtl() *Ctl {
	wire.Build(
		config.Get,
		infrastructures,
		sharedHelpers,
		bookingDomains,
		wire.Struct(new(Ctl), "*"),
	)

	return &Ctl{}
}
