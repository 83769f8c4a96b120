package cli

import (
	"testing"
)

func TestMoodAddAndEditInPlace(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&MoodAddCmd{Emoji: "😊", Name: "Content", Note: "slept well"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := (&MoodAddCmd{Emoji: "😐", Name: "Neutral"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	entries, err := ctx.Store.GetMoodEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	originalID := entries[0].ID
	originalTimestamp := entries[0].Timestamp

	newEmoji := "😄"
	if err := (&MoodEditCmd{Index: 0, Emoji: &newEmoji}).Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	entries, err = ctx.Store.GetMoodEntries()
	if err != nil {
		t.Fatal(err)
	}
	// The edit replaces in place: same position, same identity, same
	// instant, new emoji.
	if entries[0].Emoji != "😄" {
		t.Errorf("expected edited emoji, got %s", entries[0].Emoji)
	}
	if entries[0].ID != originalID {
		t.Error("expected entry to keep its ID")
	}
	if entries[0].Timestamp != originalTimestamp {
		t.Error("expected entry to keep its timestamp")
	}
}

func TestMoodDelete_OutOfRange(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&MoodDeleteCmd{Index: 0}).Run(ctx); err == nil {
		t.Error("expected error deleting from empty journal")
	}
	if err := (&MoodDeleteCmd{Index: -1}).Run(ctx); err == nil {
		t.Error("expected error for negative index")
	}
}

func TestMoodDelete_RemovesByPosition(t *testing.T) {
	ctx := setupTestContext(t)

	for _, name := range []string{"First", "Second", "Third"} {
		if err := (&MoodAddCmd{Emoji: "🙂", Name: name}).Run(ctx); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	if err := (&MoodDeleteCmd{Index: 1}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	entries, err := ctx.Store.GetMoodEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].MoodName != "First" || entries[1].MoodName != "Third" {
		t.Errorf("unexpected order after delete: %s, %s", entries[0].MoodName, entries[1].MoodName)
	}
}
