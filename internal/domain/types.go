package domain

import "time"

type SessionID string
type UserID string
type MessageID string

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Category is the discrete output of a sentiment provider.
type Category string

const (
	CategoryNegative Category = "negative"
	CategoryNeutral  Category = "neutral"
	CategoryPositive Category = "positive"
)

// ParseCategory accepts the three category names, case-insensitively
// and with surrounding whitespace.
func ParseCategory(s string) (Category, bool) {
	switch Category(normalizeLabel(s)) {
	case CategoryNegative:
		return CategoryNegative, true
	case CategoryNeutral:
		return CategoryNeutral, true
	case CategoryPositive:
		return CategoryPositive, true
	default:
		return "", false
	}
}

// Tier groups coping suggestions by severity.
type Tier string

const (
	TierMildNegative     Tier = "mild_negative"
	TierModerateNegative Tier = "moderate_negative"
	TierGeneral          Tier = "general"
)

// Tiers lists every coping tier, most severe first.
var Tiers = []Tier{TierModerateNegative, TierMildNegative, TierGeneral}

// Branch names the dispatcher rule that produced a reply.
type Branch string

const (
	BranchCrisis   Branch = "crisis"
	BranchNegative Branch = "negative"
	BranchPositive Branch = "positive"
	BranchIntent   Branch = "intent"
	BranchFallback Branch = "fallback"
)

type Timestamp = time.Time
