package user

import (
	"time"

	"github.com/tagihin/tagihin/internal/types"
)

// User is an account holder. Every user belongs to exactly one company and
// carries that company's subscription plan state.
type User struct {
	ID           string           `db:"id" json:"id"`
	Name         string           `db:"name" json:"name"`
	Email        string           `db:"email" json:"email"`
	PlanName     types.PlanName   `db:"plan_name" json:"plan_name"`
	PlanRenewsAt *time.Time       `db:"plan_renews_at" json:"plan_renews_at,omitempty"`
	types.BaseModel
}

// OnFreePlan reports whether the user is on the non-paying tier.
func (u *User) OnFreePlan() bool {
	return u.PlanName == "" || u.PlanName == types.PlanFree
}
