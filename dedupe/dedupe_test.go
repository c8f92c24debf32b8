package dedupe

import (
	"testing"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

func TestFingerprint_Deterministic(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	if Fingerprint(text) != Fingerprint(text) {
		t.Error("identical texts produced different fingerprints")
	}
}

func TestFingerprint_SimilarTexts(t *testing.T) {
	fp1 := Fingerprint("the quick brown fox jumps over the lazy dog and keeps running")
	fp2 := Fingerprint("the quick brown fox leaps over the lazy dog and keeps running")

	if d := Distance(fp1, fp2); d > 16 {
		t.Errorf("similar texts have too large distance: %d", d)
	}
}

func TestFingerprint_DifferentTexts(t *testing.T) {
	fp1 := Fingerprint("the quick brown fox jumps over the lazy dog")
	fp2 := Fingerprint("completely unrelated content about quantum physics and mathematics")

	if d := Distance(fp1, fp2); d < 5 {
		t.Errorf("very different texts have too small distance: %d", d)
	}
}

func TestFingerprint_Empty(t *testing.T) {
	if Fingerprint("") != 0 {
		t.Error("empty text should fingerprint to 0")
	}
	if Fingerprint("one two") == 0 {
		t.Error("short text below shingle size should still fingerprint")
	}
}

func TestDropRepeats_AdjacentDuplicate(t *testing.T) {
	dup := "Here is the answer you asked for, in three detailed steps."
	turns := []models.Turn{
		{Role: models.RoleUser, Text: "question"},
		{Role: models.RoleAssistant, Items: []models.ContentItem{models.NewTextItem(dup)}},
		{Role: models.RoleAssistant, Items: []models.ContentItem{models.NewTextItem(dup)}},
	}

	out := DropRepeats(turns, DefaultThreshold)
	if len(out) != 2 {
		t.Fatalf("got %d turns, want 2: %+v", len(out), out)
	}
}

func TestDropRepeats_DifferentRolesKept(t *testing.T) {
	same := "identical words in both turns of this conversation here"
	turns := []models.Turn{
		{Role: models.RoleUser, Text: same},
		{Role: models.RoleAssistant, Items: []models.ContentItem{models.NewTextItem(same)}},
	}

	if out := DropRepeats(turns, DefaultThreshold); len(out) != 2 {
		t.Errorf("role change must never be collapsed, got %d turns", len(out))
	}
}

func TestDropRepeats_NonAdjacentRepeatKept(t *testing.T) {
	q := "what is the capital of France exactly please tell me"
	turns := []models.Turn{
		{Role: models.RoleUser, Text: q},
		{Role: models.RoleAssistant, Items: []models.ContentItem{models.NewTextItem("Paris.")}},
		{Role: models.RoleUser, Text: q},
	}

	if out := DropRepeats(turns, DefaultThreshold); len(out) != 3 {
		t.Errorf("repeated question across the conversation must stay, got %d turns", len(out))
	}
}

func TestDropRepeats_EmptyTurnsUntouched(t *testing.T) {
	turns := []models.Turn{
		{Role: models.RoleAssistant},
		{Role: models.RoleAssistant},
	}
	if out := DropRepeats(turns, DefaultThreshold); len(out) != 2 {
		t.Errorf("empty turns must not be treated as duplicates, got %d", len(out))
	}
}
