package history_test

import (
	"strings"
	"testing"
	"time"

	notesdto "clinote/internal/modules/notes/dto"
	"clinote/internal/ui/views/history"
)

func TestFormatEntry(t *testing.T) {
	t.Parallel()
	e := notesdto.HistoryEntryOutput{Kind: "generated", Text: "Patient calm.", At: time.Date(2026, 3, 4, 14, 5, 9, 0, time.UTC)}
	if got := history.FormatEntry(e); got != "[14:05:09] generated: Patient calm." {
		t.Fatalf("unexpected entry %q", got)
	}
}

func TestViewListsEntries(t *testing.T) {
	t.Parallel()
	m := history.New()
	m.SetSize(80, 10)
	if !strings.Contains(m.View(), "no entries yet") {
		t.Fatalf("empty history placeholder missing")
	}
	at := time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC)
	m.SetEntries([]notesdto.HistoryEntryOutput{
		{Kind: "draft", Text: "pt calm", At: at},
		{Kind: "generated", Text: "Patient calm.", At: at},
	})
	view := m.View()
	if !strings.Contains(view, "draft: pt calm") || !strings.Contains(view, "generated: Patient calm.") {
		t.Fatalf("entries missing from view:\n%s", view)
	}
}
