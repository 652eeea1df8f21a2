package squad

import (
	"strings"
	"testing"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/player"
)

func validEleven() []Member {
	return []Member{
		{PlayerID: "p1", Position: player.PositionGoalkeeper},
		{PlayerID: "p2", Position: player.PositionDefender},
		{PlayerID: "p3", Position: player.PositionDefender},
		{PlayerID: "p4", Position: player.PositionDefender},
		{PlayerID: "p5", Position: player.PositionDefender},
		{PlayerID: "p6", Position: player.PositionMidfielder},
		{PlayerID: "p7", Position: player.PositionMidfielder},
		{PlayerID: "p8", Position: player.PositionMidfielder},
		{PlayerID: "p9", Position: player.PositionMidfielder},
		{PlayerID: "p10", Position: player.PositionForward},
		{PlayerID: "p11", Position: player.PositionForward},
	}
}

func TestValidateFormation_ValidSquad(t *testing.T) {
	check := ValidateFormation(validEleven(), DefaultFormationRules())
	if !check.Valid {
		t.Fatalf("expected valid formation, errors: %v", check.Errors)
	}
	if check.TotalPlayers != 11 {
		t.Fatalf("expected 11 players, got %d", check.TotalPlayers)
	}
}

func TestValidateFormation_CollectsEveryViolation(t *testing.T) {
	// No goalkeeper, too many forwards, and only ten players: every broken
	// rule must be reported, not just the first.
	members := []Member{
		{PlayerID: "p1", Position: player.PositionForward},
		{PlayerID: "p2", Position: player.PositionForward},
		{PlayerID: "p3", Position: player.PositionForward},
		{PlayerID: "p4", Position: player.PositionForward},
		{PlayerID: "p5", Position: player.PositionDefender},
		{PlayerID: "p6", Position: player.PositionDefender},
		{PlayerID: "p7", Position: player.PositionDefender},
		{PlayerID: "p8", Position: player.PositionMidfielder},
		{PlayerID: "p9", Position: player.PositionMidfielder},
		{PlayerID: "p10", Position: player.PositionMidfielder},
	}

	check := ValidateFormation(members, DefaultFormationRules())
	if check.Valid {
		t.Fatalf("expected invalid formation")
	}
	if len(check.Errors) != 3 {
		t.Fatalf("expected 3 violations, got %d: %v", len(check.Errors), check.Errors)
	}

	joined := strings.Join(check.Errors, "; ")
	for _, fragment := range []string{"exactly 11", "GK", "FWD"} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("expected %q in violations, got %v", fragment, check.Errors)
		}
	}
}

func TestValidateBasic_CaptainFlags(t *testing.T) {
	members := validEleven()
	members[0].IsCaptain = true
	members[0].IsViceCaptain = true

	sq := Squad{ID: "sq-1", UserID: "u-1", Name: "Test", TotalBudget: 1000, Members: members}
	if err := sq.ValidateBasic(); err == nil {
		t.Fatalf("expected error when captain and vice are the same member")
	}

	members[0].IsViceCaptain = false
	members[1].IsViceCaptain = true
	sq.Members = members
	if err := sq.ValidateBasic(); err != nil {
		t.Fatalf("expected valid captain setup, got %v", err)
	}
}
