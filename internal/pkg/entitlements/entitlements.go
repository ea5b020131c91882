package entitlements

import "strings"

type Plan string

const (
	PlanPremium     Plan = "premium"
	PlanPremiumPlus Plan = "premium_plus"
	PlanDonation    Plan = "donation"
)

// Resources granted per plan.
const (
	ResourcePremiumFeatures = "premium:features"
	ResourcePremiumNoAds    = "premium:no_ads"
	ResourcePremiumOffline  = "premium:offline"
	ResourceSupporterBadge  = "supporter:badge"
)

// ResourcesForPlan returns which resources a completed payment for the given
// plan grants. Unknown plans grant nothing; the grant loop over an empty set
// is a harmless no-op.
func ResourcesForPlan(plan string) []string {
	switch Plan(strings.ToLower(strings.TrimSpace(plan))) {
	case PlanPremiumPlus:
		return []string{ResourcePremiumFeatures, ResourcePremiumNoAds, ResourcePremiumOffline}
	case PlanPremium:
		return []string{ResourcePremiumFeatures, ResourcePremiumNoAds}
	case PlanDonation:
		return []string{ResourceSupporterBadge}
	default:
		return nil
	}
}

// AmountForPlan returns the fixed XOF price of a plan. Donations have no
// fixed price; the second return is false and the caller keeps the
// client-supplied amount.
func AmountForPlan(plan string) (int64, bool) {
	switch Plan(strings.ToLower(strings.TrimSpace(plan))) {
	case PlanPremium:
		return 5000, true
	case PlanPremiumPlus:
		return 10000, true
	default:
		return 0, false
	}
}
