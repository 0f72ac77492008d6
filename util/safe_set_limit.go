package util

import "golang.org/x/sync/errgroup"

// SafeSetLimit sets the limit on an errgroup.Group. It panics on 0, which errgroup would
// otherwise turn into a deadlock on the first Go call.
func SafeSetLimit(g *errgroup.Group, limit int) {
	if limit == 0 {
		panic("limit cannot be 0")
	}

	g.SetLimit(limit)
}
