package arnak

// ItemType identifies the kind of item an entry refers to.
type ItemType string

const (
	// ItemTypeBoardGame is a board game. Some endpoints also return
	// expansions under this type unless they are explicitly excluded.
	ItemTypeBoardGame ItemType = "boardgame"
	// ItemTypeBoardGameExpansion is an expansion for a board game.
	ItemTypeBoardGameExpansion ItemType = "boardgameexpansion"
	// ItemTypeBoardGameAccessory is an accessory such as a playmat.
	ItemTypeBoardGameAccessory ItemType = "boardgameaccessory"
)

// WishlistPriority is the 1-5 priority a user gives a wishlisted game.
// Lower is more wanted. Zero means not set.
type WishlistPriority int

const (
	WishlistPriorityUnset           WishlistPriority = 0
	WishlistPriorityMustHave        WishlistPriority = 1
	WishlistPriorityLoveToHave      WishlistPriority = 2
	WishlistPriorityLikeToHave      WishlistPriority = 3
	WishlistPriorityThinkingAboutIt WishlistPriority = 4
	WishlistPriorityDontBuyThis     WishlistPriority = 5
)

// Bool returns a pointer to v, for setting optional filter flags.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for setting optional numeric filters.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for setting optional rating filters.
func Float(v float64) *float64 { return &v }
