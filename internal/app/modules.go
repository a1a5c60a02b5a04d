package app

import (
	"github.com/vk/plotmod/internal/registry"
	"github.com/vk/plotmod/models/annotations"
	"github.com/vk/plotmod/models/styles"
)

// coreModules are the builtin model packages registered when the caller
// does not supply its own set. Order matters: annotation classes include
// the style groups.
var coreModules = []registry.Module{
	&styles.Module{},
	&annotations.Module{},
}
