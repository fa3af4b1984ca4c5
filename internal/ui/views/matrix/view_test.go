package matrix

import (
	"strings"
	"testing"

	matrixdto "banditboard/internal/modules/matrix/dto"
)

func TestRenderPlacesTitles(t *testing.T) {
	t.Parallel()
	var out matrixdto.MatrixOutput
	out.Title = "Q3 bets"
	out.Cells[4][0] = []matrixdto.MatrixCell{{Title: "landing", Zone: "QUICK_WINS", Score: 10}}
	for _, title := range []string{"a1", "a2", "a3", "a4"} {
		out.Cells[0][4] = append(out.Cells[0][4], matrixdto.MatrixCell{Title: title, Zone: "IGNORE", Score: 2})
	}

	text := Render(out, 100)
	for _, want := range []string{"Q3 bets", "landing", "I5", "C5", "a1", "a2", "+2 more"} {
		if !strings.Contains(text, want) {
			t.Fatalf("render missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "a4") {
		t.Fatalf("overflowing titles should be summarised:\n%s", text)
	}
	if strings.Index(text, "landing") > strings.Index(text, "a1") {
		t.Fatalf("high impact row must come first:\n%s", text)
	}
}

func TestClip(t *testing.T) {
	t.Parallel()
	if got := clip("abcdefgh", 5); got != "abcd…" {
		t.Fatalf("unexpected clip: %q", got)
	}
	if got := clip("abc", 5); got != "abc" {
		t.Fatalf("short strings stay intact: %q", got)
	}
}
