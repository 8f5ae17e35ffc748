package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
)

func TestPlanRecipients_ExcludesActorAndUpgradesMentions(t *testing.T) {
	got := PlanRecipients(Event{
		Type:         models.NotificationCommentAdded,
		ActorID:      "actor",
		Parties:      []string{"actor", "staff", "manager", "creator"},
		MentionedIDs: []string{"manager"},
	})

	assert.ElementsMatch(t, []Recipient{
		{UserID: "staff", Mention: false},
		{UserID: "manager", Mention: true},
		{UserID: "creator", Mention: false},
	}, got)
}

func TestPlanRecipients_MentionedOutsiderIncluded(t *testing.T) {
	got := PlanRecipients(Event{
		ActorID:      "actor",
		Parties:      []string{"staff"},
		MentionedIDs: []string{"outsider"},
	})

	assert.ElementsMatch(t, []Recipient{
		{UserID: "staff", Mention: false},
		{UserID: "outsider", Mention: true},
	}, got)
}

func TestPlanRecipients_DeduplicatesParties(t *testing.T) {
	// supervisor doubles as manager on small teams
	got := PlanRecipients(Event{
		ActorID: "actor",
		Parties: []string{"sup", "sup", "staff"},
	})
	assert.Len(t, got, 2)
}

func TestPlanRecipients_ActorMentioningThemselves(t *testing.T) {
	got := PlanRecipients(Event{
		ActorID:      "actor",
		Parties:      []string{"actor"},
		MentionedIDs: []string{"actor"},
	})
	assert.Empty(t, got)
}

func TestPlanRecipients_SkipsEmptyIDs(t *testing.T) {
	got := PlanRecipients(Event{
		ActorID: "actor",
		Parties: []string{"", "staff"},
	})
	assert.Equal(t, []Recipient{{UserID: "staff"}}, got)
}

func TestMilestonesCrossed(t *testing.T) {
	tests := []struct {
		name     string
		old, new int
		want     []int
	}{
		{"crosses fifty", 40, 60, []int{50}},
		{"lands exactly on fifty", 40, 50, []int{50}},
		{"already past fifty", 60, 80, nil},
		{"reaches hundred", 95, 100, []int{100}},
		{"repeated hundred", 100, 100, nil},
		{"jump across both", 10, 100, []int{50, 100}},
		{"no movement", 50, 50, nil},
		{"regression", 60, 40, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MilestonesCrossed(tt.old, tt.new))
		})
	}
}
