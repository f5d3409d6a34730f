package router

import (
	"hotelier/internal/handlers/bank"
	"hotelier/internal/handlers/booking"
	"hotelier/internal/handlers/employee"
	"hotelier/internal/handlers/expense"
	"hotelier/internal/handlers/finance"
	"hotelier/internal/handlers/guest"
	"hotelier/internal/handlers/inventory"
	"hotelier/internal/handlers/invoice"
	"hotelier/internal/handlers/ledger"
	"hotelier/internal/handlers/policy"
	"hotelier/internal/handlers/room"
	"hotelier/internal/handlers/transaction"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Booking     booking.Handler
	Room        room.Handler
	Guest       guest.Handler
	Bank        bank.Handler
	Ledger      ledger.Handler
	Transaction transaction.Handler
	Invoice     invoice.Handler
	Finance     finance.Handler
	Inventory   inventory.Handler
	Policy      policy.Handler
	Employee    employee.Handler
	Expense     expense.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Guest.Router(routerGroup)
		r.DomainHandlers.Bank.Router(routerGroup)
		r.DomainHandlers.Ledger.Router(routerGroup)
		r.DomainHandlers.Transaction.Router(routerGroup)
		r.DomainHandlers.Invoice.Router(routerGroup)
		r.DomainHandlers.Finance.Router(routerGroup)
		r.DomainHandlers.Inventory.Router(routerGroup)
		r.DomainHandlers.Policy.Router(routerGroup)
		r.DomainHandlers.Employee.Router(routerGroup)
		r.DomainHandlers.Expense.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
