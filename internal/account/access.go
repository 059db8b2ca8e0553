// AngelaMos | 2026
// access.go

package account

import (
	"math"
	"time"
)

type DenialReason string

const (
	DenialInactive            DenialReason = "account_inactive"
	DenialNoSubscription      DenialReason = "no_subscription"
	DenialSubscriptionExpired DenialReason = "subscription_expired"
)

type Decision struct {
	Allowed bool
	Reason  DenialReason
}

// Decide evaluates subscription access. Inactive accounts are denied before
// anything else, admins bypass subscription checks entirely, and monthly
// subscriptions require an expiry strictly in the future.
func Decide(acct *Account, now time.Time) Decision {
	if !acct.IsActive {
		return Decision{Reason: DenialInactive}
	}

	if acct.IsAdmin() {
		return Decision{Allowed: true}
	}

	switch acct.SubscriptionType {
	case SubscriptionNone:
		return Decision{Reason: DenialNoSubscription}
	case SubscriptionLifetime:
		return Decision{Allowed: true}
	case SubscriptionMonthly:
		if acct.SubscriptionExpiresAt == nil ||
			!acct.SubscriptionExpiresAt.After(now) {
			return Decision{Reason: DenialSubscriptionExpired}
		}
		return Decision{Allowed: true}
	}

	return Decision{Reason: DenialNoSubscription}
}

// DaysRemaining reports -1 for unlimited access, 0 for no or expired
// subscriptions, and the number of days (rounded up) otherwise.
func DaysRemaining(acct *Account, now time.Time) int {
	switch acct.SubscriptionType {
	case SubscriptionLifetime:
		return -1
	case SubscriptionNone:
		return 0
	case SubscriptionMonthly:
		if acct.SubscriptionExpiresAt == nil ||
			!acct.SubscriptionExpiresAt.After(now) {
			return 0
		}
		remaining := acct.SubscriptionExpiresAt.Sub(now)
		return int(math.Ceil(remaining.Hours() / 24))
	}

	return 0
}
