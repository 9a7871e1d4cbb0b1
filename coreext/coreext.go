// Package coreext imports every core extension, so that each VM created
// afterward has them installed.
package coreext

import (
	// importing for side effects
	_ "github.com/zephyrtronium/citrine/coreext/request"
)
