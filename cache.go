/*
Copyright © 2019 the Ascent authors.
This file is part of Ascent.

Ascent is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Ascent is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Ascent.  If not, see <http://www.gnu.org/licenses/>.
*/

package ascent

import (
	"context"

	"github.com/ctessum/requestcache"
	"github.com/spatialmodel/ascent/internal/hash"
	"github.com/spatialmodel/ascent/science/eos"
)

// PlanCache plans independent dive series in parallel and keeps
// recent results in memory. Identical requests that arrive while one
// is being computed wait for that result instead of computing it again.
type PlanCache struct {
	cache *requestcache.Cache
}

type planRequest struct {
	Config Config
	Plans  []*DivePlan
}

// NewPlanCache returns a cache that plans on the given number of
// workers and remembers up to maxEntries results. Every request gets
// its own planner, configured with opts.
func NewPlanCache(e eos.EquationOfState, workers, maxEntries int, opts ...PlannerOption) *PlanCache {
	process := func(ctx context.Context, payload interface{}) (interface{}, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := payload.(*planRequest)
		return PlanSeries(r.Config, e, r.Plans, opts...)
	}
	return &PlanCache{
		cache: requestcache.NewCache(process, workers,
			requestcache.Deduplicate(), requestcache.Memory(maxEntries)),
	}
}

// Plan returns the results of PlanSeries for cfg and plans. The
// results may be shared with other callers and must not be modified.
func (c *PlanCache) Plan(ctx context.Context, cfg Config, plans []*DivePlan) ([]*Result, error) {
	r := &planRequest{Config: cfg, Plans: plans}
	req := c.cache.NewRequest(ctx, r, "plan_"+hash.Hash(r))
	result, err := req.Result()
	if err != nil {
		return nil, err
	}
	return result.([]*Result), nil
}

// Computed returns the number of plans that have actually been
// computed rather than taken from the cache.
func (c *PlanCache) Computed() int {
	r := c.cache.Requests()
	return r[len(r)-1]
}
