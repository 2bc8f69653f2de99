package models

import "slices"

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Badge is immutable once earned.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Rarity      Rarity `json:"rarity"`
	EarnedAt    string `json:"earnedAt"` // day key
}

// UserProfile is the aggregate view over all habits. Numeric fields are
// recomputed on every change; Badges is append-only.
type UserProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	JoinDate string `json:"joinDate"` // day key
	Timezone string `json:"timezone,omitempty"`

	TotalHabits    int     `json:"totalHabits"`
	CompletedToday int     `json:"completedToday"`
	LongestStreak  int     `json:"longestStreak"`
	Badges         []Badge `json:"badges"`
	Level          int     `json:"level"`
	XP             int     `json:"xp"`
}

func (p UserProfile) HasBadge(id string) bool {
	return slices.ContainsFunc(p.Badges, func(b Badge) bool { return b.ID == id })
}

// Clone returns a copy whose badge slice is not shared with p.
func (p UserProfile) Clone() UserProfile {
	c := p
	c.Badges = slices.Clone(p.Badges)
	if c.Badges == nil {
		c.Badges = []Badge{}
	}
	return c
}
