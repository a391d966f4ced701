package services

import "vidshare/internal/models"

type likeAction int

const (
	likeActionCreate likeAction = iota
	likeActionRemove
	likeActionFlip
)

// nextLikeAction decides how a request for desired changes the edge current
// (nil when the user has no reaction). Repeating a reaction removes it,
// requesting the opposite reaction flips the sign.
func nextLikeAction(current *models.Like, desired models.Reaction) likeAction {
	switch {
	case current == nil:
		return likeActionCreate
	case current.Sign == desired:
		return likeActionRemove
	default:
		return likeActionFlip
	}
}

// resultingReaction is the state of the edge after action is applied.
func resultingReaction(action likeAction, desired models.Reaction) models.Reaction {
	if action == likeActionRemove {
		return models.ReactionNone
	}
	return desired
}
