// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestValues_OrderedAndUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[Id]bool)
	var prev Id
	for _, is := range Values() {
		if seen[is.Id()] {
			t.Errorf("duplicate ID: %d", is.Id())
		}
		seen[is.Id()] = true
		if is.Id() <= prev {
			t.Errorf("IDs out of order: %d after %d", is.Id(), prev)
		}
		prev = is.Id()
		if strings.TrimSpace(string(is.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", is.Id())
		}
	}

	if ConfigLoadFailedId != 1 {
		t.Errorf("ConfigLoadFailedId = %d, want 1", ConfigLoadFailedId)
	}
	if len(seen) != int(DirectoryNotSupportedId) {
		t.Errorf("catalog has %d entries, want %d", len(seen), DirectoryNotSupportedId)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	is := Get(UnsupportedConfigurationId)
	if is == nil {
		t.Fatal("Get(UnsupportedConfigurationId) returned nil")
	}
	if !strings.Contains(string(is.MarkdownMsg()), "not supported") {
		t.Errorf("unexpected message: %s", is.MarkdownMsg())
	}

	if Get(Id(999)) != nil {
		t.Error("Get(999) should return nil")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	is := &Issue{
		id:       NoConfigurationsId,
		mdMsg:    "# Title\nbody",
		docLinks: []HttpLink{"https://example.com/docs"},
	}
	out, err := is.Render("notty")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(out, "Title") || !strings.Contains(out, "https://example.com/docs") {
		t.Errorf("Render() output missing content:\n%s", out)
	}

	links := is.DocLinks()
	links[0] = "changed"
	if is.docLinks[0] != "https://example.com/docs" {
		t.Error("DocLinks() should return a copy")
	}
}
