package balance

import (
	"coinbot/application"
	"coinbot/bot/common"
)

// Feature serves the balance, deposit and withdraw commands and the balance buttons
type Feature struct {
	uowFactory application.UnitOfWorkFactory
	economy    *application.Economy
	names      common.NameResolver
}

// New creates the balance feature
func New(uowFactory application.UnitOfWorkFactory, economy *application.Economy, names common.NameResolver) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		economy:    economy,
		names:      names,
	}
}
