package routes

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/vango-dev/routegen/internal/templates"
)

const testRegion = templates.RegionStart + "\nnew\n" + templates.RegionEnd

func TestParseDocument(t *testing.T) {
	content := "// user header\n" + templates.RegionStart + "\nold\n" + templates.RegionEnd + "\n\nexport const extra = 1\n"
	doc := ParseDocument(content)

	if !doc.HasRegion {
		t.Fatal("region not found")
	}
	if doc.Preamble != "// user header\n" {
		t.Errorf("Preamble = %q", doc.Preamble)
	}
	if doc.Postamble != "\n\nexport const extra = 1\n" {
		t.Errorf("Postamble = %q", doc.Postamble)
	}
	if doc.String() != content {
		t.Error("String() should reassemble the content")
	}

	want := "// user header\n" + testRegion + "\n\nexport const extra = 1\n"
	if got := doc.Splice(testRegion); got != want {
		t.Errorf("Splice = %q, want %q", got, want)
	}
}

func TestParseDocument_NoRegion(t *testing.T) {
	content := "export const extra = 1\n"
	doc := ParseDocument(content)
	if doc.HasRegion {
		t.Fatal("unexpected region")
	}
	if got, want := doc.Splice(testRegion), testRegion+"\n\n"+content; got != want {
		t.Errorf("Splice = %q, want %q", got, want)
	}
}

func TestParseDocument_Empty(t *testing.T) {
	if got, want := ParseDocument("").Splice(testRegion), testRegion+"\n\n"; got != want {
		t.Errorf("Splice = %q, want %q", got, want)
	}
}

func TestParseDocument_UnterminatedRegion(t *testing.T) {
	content := templates.RegionStart + "\nhalf a region\n"
	doc := ParseDocument(content)
	if doc.HasRegion {
		t.Fatal("a start marker alone is not a region")
	}

	spliced := doc.Splice(testRegion)
	again := ParseDocument(spliced)
	if !again.HasRegion || again.Generated != testRegion {
		t.Errorf("prepended region should be found first, got %+v", again)
	}
}

func TestParseDocument_FirstRegionOnly(t *testing.T) {
	second := templates.RegionStart + "\nsecond\n" + templates.RegionEnd
	content := templates.RegionStart + "\nfirst\n" + templates.RegionEnd + "\n" + second
	got := ParseDocument(content).Splice(testRegion)
	if got != testRegion+"\n"+second {
		t.Errorf("Splice = %q", got)
	}
}

func TestSplice_RegionIsolation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// Lower-case text cannot contain a marker.
		pre := rapid.StringMatching(`[a-z /=\n]{0,40}`).Draw(t, "pre")
		old := rapid.StringMatching(`[a-z /=\n]{0,40}`).Draw(t, "old")
		post := rapid.StringMatching(`[a-z /=\n]{0,40}`).Draw(t, "post")
		body := rapid.StringMatching(`[a-z /=\n]{0,40}`).Draw(t, "body")
		region := templates.RegionStart + body + templates.RegionEnd

		content := pre + templates.RegionStart + old + templates.RegionEnd + post
		got := ParseDocument(content).Splice(region)
		if got != pre+region+post {
			t.Fatalf("outside text changed: %q", got)
		}

		// Splicing twice is the same as splicing once.
		if again := ParseDocument(got).Splice(region); again != got {
			t.Fatalf("splice not idempotent: %q", again)
		}

		plain := pre + post
		if got := ParseDocument(plain).Splice(region); got != region+"\n\n"+plain {
			t.Fatalf("prepend changed content: %q", got)
		}
	})
}
