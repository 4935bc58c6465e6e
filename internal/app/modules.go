package app

import (
	"github.com/vk/webstage/internal/registry"
	"github.com/vk/webstage/modules/clock"
	"github.com/vk/webstage/modules/people"
)

// coreModules is the definitive list of fixture component modules that are
// compiled into the harness binary.
var coreModules = []registry.Module{
	&people.Module{},
	&clock.Module{},
}
