package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	got := Info()
	for _, part := range []string{Version, GitCommit, BuildDate} {
		if !strings.Contains(got, part) {
			t.Errorf("Info() = %q, missing %q", got, part)
		}
	}
}
