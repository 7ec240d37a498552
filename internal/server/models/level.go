package models

// LevelName is one of the role tiers seeded into the levels catalog.
type LevelName string

const (
	LevelMemberBasic    LevelName = "MEMBER_BASIC"
	LevelMemberStandard LevelName = "MEMBER_STANDARD"
	LevelMemberPremium  LevelName = "MEMBER_PREMIUM"
	LevelAdmin          LevelName = "ADMIN"
	LevelInstructor     LevelName = "INSTRUCTOR"
)

type Level struct {
	ID   int64
	Name LevelName
}

// ResolveLevelName maps a requested level to a catalog name. Only an exact
// match of a non-basic level is honoured; anything else, including an empty
// request, yields MEMBER_BASIC.
func ResolveLevelName(requested string) LevelName {
	switch LevelName(requested) {
	case LevelMemberStandard, LevelMemberPremium, LevelAdmin, LevelInstructor:
		return LevelName(requested)
	default:
		return LevelMemberBasic
	}
}
