package entitlements

import (
	"reflect"
	"testing"
)

func TestResourcesForPlan(t *testing.T) {
	tests := []struct {
		plan string
		want []string
	}{
		{"premium", []string{ResourcePremiumFeatures, ResourcePremiumNoAds}},
		{"premium_plus", []string{ResourcePremiumFeatures, ResourcePremiumNoAds, ResourcePremiumOffline}},
		{"donation", []string{ResourceSupporterBadge}},
		{"  Premium  ", []string{ResourcePremiumFeatures, ResourcePremiumNoAds}},
		{"enterprise", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ResourcesForPlan(tt.plan); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ResourcesForPlan(%q) = %v, want %v", tt.plan, got, tt.want)
		}
	}
}

func TestAmountForPlan(t *testing.T) {
	tests := []struct {
		plan   string
		amount int64
		fixed  bool
	}{
		{"premium", 5000, true},
		{"PREMIUM_PLUS", 10000, true},
		{"donation", 0, false},
		{"unknown", 0, false},
	}
	for _, tt := range tests {
		amount, fixed := AmountForPlan(tt.plan)
		if amount != tt.amount || fixed != tt.fixed {
			t.Errorf("AmountForPlan(%q) = (%d, %v), want (%d, %v)", tt.plan, amount, fixed, tt.amount, tt.fixed)
		}
	}
}
