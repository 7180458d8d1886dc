package git

import (
	"io"
	"testing"
)

type progressCall struct {
	percent int
	message string
}

func TestProgressWriter(t *testing.T) {
	var calls []progressCall
	w := NewProgressWriter(func(percent int, message string) {
		calls = append(calls, progressCall{percent, message})
	})

	chunks := []string{
		"Enumerating objects: 20, done.\n",
		"Receiving objects:  45% (9/20)\r",
		"Receiving objects:  45% (9/20)\r",
		"Receiving obj",
		"ects: 100% (20/20), done.\n",
		"Resolving deltas:  50% (1/2)\r",
	}
	for _, c := range chunks {
		if _, err := io.WriteString(w, c); err != nil {
			t.Fatal(err)
		}
	}

	want := []progressCall{
		{45, "Receiving objects"},
		{100, "Receiving objects"},
		{50, "Resolving deltas"},
	}
	if len(calls) != len(want) {
		t.Fatalf("Expected %d progress calls, got %d: %+v", len(want), len(calls), calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %+v, want %+v", i, calls[i], want[i])
		}
	}
}

func TestProgressWriter_IgnoresOutOfRange(t *testing.T) {
	called := false
	w := NewProgressWriter(func(int, string) { called = true })

	if _, err := io.WriteString(w, "Counting: 250% nonsense\n"); err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("Expected percentages above 100 to be ignored")
	}
}
