package di

import (
	"hotelier/config"
	"hotelier/infras/jwt"
	"hotelier/infras/kafka"

	bookingService "hotelier/internal/domains/booking/service"
	financeService "hotelier/internal/domains/finance/service"
)

// Ctl carries what the operations CLI needs from the service graph.
type Ctl struct {
	Config  *config.Config
	Booking bookingService.Booking
	Finance financeService.Finance
	Kafka   kafka.Client
	JWT     jwt.JWT
}
