package usecase

import (
	"math/rand"

	"github.com/globallaw/crm-backend/internal/entity"
)

// RandomAssignment assigns leads to a uniformly random advisor. Not
// load-balanced; a busy advisor is as likely to be picked as an idle one.
type RandomAssignment struct{}

func (RandomAssignment) PickAssignee(advisors []*entity.User) *entity.User {
	if len(advisors) == 0 {
		return nil
	}
	return advisors[rand.Intn(len(advisors))]
}
