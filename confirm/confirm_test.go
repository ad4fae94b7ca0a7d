package confirm

import (
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

func click(userID, customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:    discordgo.InteractionMessageComponent,
		Data:    discordgo.MessageComponentInteractionData{CustomID: customID},
		Message: &discordgo.Message{ID: "m1"},
		User:    &discordgo.User{ID: userID},
	}}
}

func TestWithDefaults(t *testing.T) {
	o := withDefaults(nil)
	if o.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", o.Timeout)
	}
	if o.ConfirmLabel != "Confirm" || o.CancelLabel != "Cancel" {
		t.Errorf("labels = %q/%q", o.ConfirmLabel, o.CancelLabel)
	}
	o = withDefaults(&Options{Timeout: time.Minute, ConfirmLabel: "Yes"})
	if o.Timeout != time.Minute || o.ConfirmLabel != "Yes" || o.CancelLabel != "Cancel" {
		t.Errorf("overrides not merged: %+v", o)
	}
}

func TestCustomIDsAreNonceScoped(t *testing.T) {
	c1, x1 := customIDs(uuid.NewString())
	c2, x2 := customIDs(uuid.NewString())
	if c1 == c2 || x1 == x2 {
		t.Error("two sessions must not share button customIDs")
	}
	if !strings.HasSuffix(c1, ":yes") || !strings.HasSuffix(x1, ":no") {
		t.Errorf("unexpected id shape: %q %q", c1, x1)
	}
}

func TestFilterAcceptsOwnerButtonsOnly(t *testing.T) {
	confirmID, cancelID := customIDs("n1")
	f := makeFilter(nil, "owner", confirmID, cancelID)

	if !f(click("owner", confirmID)) {
		t.Error("owner confirm click should qualify")
	}
	if !f(click("owner", cancelID)) {
		t.Error("owner cancel click should qualify")
	}
	if f(click("intruder", confirmID)) {
		t.Error("non-owner click must not qualify")
	}
	if f(click("owner", "cf:other:yes")) {
		t.Error("another session's button must not qualify")
	}
}

func TestConcurrentSessionsDoNotCrossResolve(t *testing.T) {
	aConfirm, aCancel := customIDs(uuid.NewString())
	bConfirm, bCancel := customIDs(uuid.NewString())
	fa := makeFilter(nil, "owner", aConfirm, aCancel)
	fb := makeFilter(nil, "owner", bConfirm, bCancel)

	if fa(click("owner", bConfirm)) {
		t.Error("session A must ignore session B's confirm button")
	}
	if fb(click("owner", aCancel)) {
		t.Error("session B must ignore session A's cancel button")
	}
}

func TestButtons(t *testing.T) {
	confirmID, cancelID := customIDs("n1")
	comps := buttons(confirmID, cancelID, withDefaults(nil))
	row := comps[0].(discordgo.ActionsRow)
	if len(row.Components) != 2 {
		t.Fatalf("got %d buttons, want 2", len(row.Components))
	}
	yes := row.Components[0].(discordgo.Button)
	no := row.Components[1].(discordgo.Button)
	if yes.CustomID != confirmID || yes.Style != discordgo.SuccessButton {
		t.Errorf("confirm button = %+v", yes)
	}
	if no.CustomID != cancelID || no.Style != discordgo.DangerButton {
		t.Errorf("cancel button = %+v", no)
	}
}

func TestAskRequiresSession(t *testing.T) {
	if _, err := Ask(nil, nil, Payload{}, nil); err != ErrNotReady {
		t.Errorf("err = %v, want ErrNotReady", err)
	}
}
