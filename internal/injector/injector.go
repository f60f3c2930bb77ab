//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/plus3/spacecourier/config"
	"github.com/plus3/spacecourier/sfx"
)

var appSet = wire.NewSet(
	ProvideSession,
	ProvideLogger,
	ProvideBus,
	ProvideBackend,
	ProvideTracker,
	ProvideCues,
	ProvideGame,
	NewApp,
)

// InitializeApp builds the game for cfg. Sound plays through player, which
// may be nil to run silently.
func InitializeApp(cfg config.Config, player sfx.Player) (*App, func(), error) {
	wire.Build(appSet)
	return nil, nil, nil
}
