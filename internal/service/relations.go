package service

import (
	"context"
	"strings"

	"github.com/jimmydengpeng/BaziMiao/internal/domain"
	"github.com/jimmydengpeng/BaziMiao/internal/engine"
)

// RelationsRequest names the pillars by slot. The four natal slots are
// required; luck and annual are optional. A non-empty Slot keeps only the
// relations involving that slot.
type RelationsRequest struct {
	Pillars map[string]string `json:"pillars"`
	Slot    string            `json:"slot,omitempty"`
}

// Relations computes the relation set of an ad-hoc pillar set.
func (s *ChartService) Relations(ctx context.Context, req RelationsRequest) (domain.Relations, error) {
	if err := ctx.Err(); err != nil {
		return domain.Relations{}, err
	}
	pairs := make(map[domain.Slot]domain.GanZhi, len(req.Pillars))
	for key, value := range req.Pillars {
		slot := domain.Slot(strings.ToLower(strings.TrimSpace(key)))
		if !slot.Valid() {
			return domain.Relations{}, domain.ErrValidation("unknown pillar slot %q", key)
		}
		if strings.TrimSpace(value) == "" && !slot.IsNatal() {
			continue
		}
		gz, err := domain.ParseGanZhi(strings.TrimSpace(value))
		if err != nil {
			return domain.Relations{}, domain.ErrValidation("%s pillar: %s", slot, err.Error())
		}
		pairs[slot] = gz
	}
	for _, slot := range domain.NatalSlots {
		if _, ok := pairs[slot]; !ok {
			return domain.Relations{}, domain.ErrValidation("%s pillar is required", slot)
		}
	}

	rel, err := engine.RelationsOf(pairs)
	if err != nil {
		return domain.Relations{}, err
	}
	if req.Slot == "" {
		return rel, nil
	}
	filter := domain.Slot(strings.ToLower(strings.TrimSpace(req.Slot)))
	if !filter.Valid() {
		return domain.Relations{}, domain.ErrValidation("unknown filter slot %q", req.Slot)
	}
	return engine.FilterRelations(rel, filter), nil
}
