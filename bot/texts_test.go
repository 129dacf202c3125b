package bot

import (
	"strings"
	"testing"
)

func TestHelpTextAdminSection(t *testing.T) {
	admin := helpText(true)
	if !strings.Contains(admin, "Administrator:") || !strings.Contains(admin, "/add") {
		t.Fatalf("admin help misses the admin section: %q", admin)
	}

	user := helpText(false)
	if strings.Contains(user, "Administrator:") || strings.Contains(user, "/add") {
		t.Fatalf("non-admin help leaks admin commands: %q", user)
	}
	if !strings.Contains(user, "inline mode") {
		t.Fatalf("non-admin help misses the inline section: %q", user)
	}
}
