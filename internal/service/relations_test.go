package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmydengpeng/BaziMiao/internal/domain"
)

func TestRelations(t *testing.T) {
	t.Parallel()
	svc := newService(Config{})

	rel, err := svc.Relations(context.Background(), RelationsRequest{Pillars: map[string]string{
		"year": "甲子", "month": "丙寅", "day": "己卯", "hour": "庚午", "luck": "", "annual": "",
	}})
	require.NoError(t, err)
	var comb bool
	for _, r := range rel.Stem {
		if r.Type == domain.RelCombination {
			comb = true
			assert.Equal(t, []domain.Slot{domain.SlotYear, domain.SlotDay}, r.Slots)
		}
	}
	assert.True(t, comb, "甲己 combination")
}

func TestRelations_SlotFilter(t *testing.T) {
	t.Parallel()
	svc := newService(Config{})

	rel, err := svc.Relations(context.Background(), RelationsRequest{
		Pillars: map[string]string{"Year": "甲子", "month": "丙寅", "day": "己卯", "hour": "庚午", "luck": "庚申"},
		Slot:    "luck",
	})
	require.NoError(t, err)
	require.Positive(t, rel.Len())
	for _, group := range [][]domain.Relation{rel.Stem, rel.Branch, rel.StemBranch} {
		assert.NotNil(t, group)
		for _, r := range group {
			assert.True(t, r.Involves(domain.SlotLuck))
		}
	}
}

func TestRelations_Validation(t *testing.T) {
	t.Parallel()
	svc := newService(Config{})

	tests := []struct {
		name string
		req  RelationsRequest
		want string
	}{
		{"missing hour", RelationsRequest{Pillars: map[string]string{"year": "甲子", "month": "丙寅", "day": "己卯"}}, "hour pillar is required"},
		{"unknown slot", RelationsRequest{Pillars: map[string]string{"minute": "甲子"}}, "unknown pillar slot"},
		{"bad pillar", RelationsRequest{Pillars: map[string]string{"year": "甲丑", "month": "丙寅", "day": "己卯", "hour": "庚午"}}, "year pillar"},
		{"bad filter", RelationsRequest{Pillars: map[string]string{"year": "甲子", "month": "丙寅", "day": "己卯", "hour": "庚午"}, Slot: "era"}, "unknown filter slot"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Relations(context.Background(), tc.req)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Message, tc.want)
		})
	}
}
