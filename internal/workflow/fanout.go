package workflow

import "github.com/Nabeelato/job-tracker-app-sub001/internal/models"

// Recipient is one planned notification delivery. Mention is true when
// the user was @-mentioned and should receive the mention variant
// instead of the generic one for the event.
type Recipient struct {
	UserID  string
	Mention bool
}

// Event describes a job happening whose notification fan-out needs to
// be planned. Parties are the job's interested users (assignee,
// supervisor, manager, creator); MentionedIDs come from
// ExtractMentions when the event carries a comment body.
type Event struct {
	Type         models.NotificationType
	ActorID      string
	Parties      []string
	MentionedIDs []string
}

// PlanRecipients computes the delivery set for an event: the union of
// the job's parties and the mentioned users, minus the actor, with
// duplicates collapsed. A user who is both a party and mentioned gets
// a single delivery with the mention variant.
func PlanRecipients(ev Event) []Recipient {
	index := make(map[string]int)
	out := make([]Recipient, 0, len(ev.Parties)+len(ev.MentionedIDs))

	add := func(id string, mention bool) {
		if id == "" || id == ev.ActorID {
			return
		}
		if i, ok := index[id]; ok {
			if mention {
				out[i].Mention = true
			}
			return
		}
		index[id] = len(out)
		out = append(out, Recipient{UserID: id, Mention: mention})
	}

	for _, id := range ev.Parties {
		add(id, false)
	}
	for _, id := range ev.MentionedIDs {
		add(id, true)
	}
	return out
}

// MilestonesCrossed returns the progress milestones reached by moving
// from oldProgress to newProgress. The 50% milestone fires when the
// old value was below 50 and the new one is at or above it; the 100%
// milestone fires only when the new value is exactly 100. A change
// that stays on the same side of both thresholds returns nothing, so
// repeated updates at the same value never re-fire.
func MilestonesCrossed(oldProgress, newProgress int) []int {
	var crossed []int
	if oldProgress < 50 && newProgress >= 50 {
		crossed = append(crossed, 50)
	}
	if oldProgress < 100 && newProgress == 100 {
		crossed = append(crossed, 100)
	}
	return crossed
}
