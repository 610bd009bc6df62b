package account

import (
	"strings"
	"testing"
)

func FuzzParse(f *testing.F) {
	seeds := []string{
		"8129-9,043 386 711-6",
		"9340 321 4681",
		"33006001010328",
		"95303648748",
		"123",
		"5000 1234561",
		"80000",
		"",
		"ÅÄÖ 9550-1234566",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		b, err := Parse(nil, input)
		if err != nil {
			if KindOf(err) == "error" {
				t.Fatalf("Parse(%q) returned an unclassified error: %v", input, err)
			}
			return
		}

		out := Format(b, StyleDefault)
		again, err := Parse(nil, out)
		if err != nil {
			t.Fatalf("default form %q of %q does not parse: %v", out, input, err)
		}
		if again.ClearingNumber() != b.ClearingNumber() {
			t.Fatalf("clearing changed: %v -> %v", b.ClearingNumber(), again.ClearingNumber())
		}
		if strings.TrimLeft(again.AccountNumber().String(), "0") != strings.TrimLeft(b.AccountNumber().String(), "0") {
			t.Fatalf("account changed: %v -> %v", b.AccountNumber(), again.AccountNumber())
		}
		_ = Format(b, StylePretty)
	})
}
