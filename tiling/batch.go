// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tiling

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// PlanRequest is one operator instance in a batch.
type PlanRequest struct {
	Name     string // Used in error messages only
	Workload WorkloadDescriptor
	Fields   KeyFields
}

// PlanBatch builds the plans of independent operator instances concurrently,
// running at most limit at a time (GOMAXPROCS when limit <= 0).
//
// Plans are returned in request order. The first failure cancels the
// remaining requests and is returned with the request name attached; the
// underlying error still matches with errors.Is and errors.As.
func PlanBatch(ctx context.Context, hw HardwareProfile, reqs []PlanRequest, limit int) ([]TilingPlan, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	plans := make([]TilingPlan, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, req := range reqs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			plan, err := BuildPlan(hw, req.Workload, req.Fields)
			if err != nil {
				return errors.WithMessagef(err, "request %d (%s)", i, req.Name)
			}
			plans[i] = plan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	klog.V(2).InfoS("planned batch", "profile", hw.Name, "requests", len(reqs), "limit", limit)
	return plans, nil
}
