package mod

import (
	"strings"
	"testing"

	"github.com/PancyStudios/ModBotGo/pkg/store"
)

func TestFormatTopUsersEmpty(t *testing.T) {
	got := formatTopUsers(nil)
	if got != "Sin advertencias registradas." {
		t.Errorf("formatTopUsers(nil) = %q", got)
	}
}

func TestFormatTopUsers(t *testing.T) {
	rows := []store.UserCount{
		{UserID: "111", WarningCount: 3},
		{UserID: "222", WarningCount: 1},
	}

	got := formatTopUsers(rows)
	lines := strings.Split(got, "\n")

	if len(lines) != 2 {
		t.Fatalf("formatTopUsers produced %d lines, want 2", len(lines))
	}
	if lines[0] != "<@111> — 3 advertencia(s)" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[1] != "<@222> — 1 advertencia(s)" {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestFormatModerators(t *testing.T) {
	rows := []store.ModeratorCount{
		{ModeratorID: "999", WarningCount: 7},
	}

	got := formatModerators(rows)
	if got != "<@999> — 7 advertencia(s)" {
		t.Errorf("formatModerators = %q", got)
	}

	if formatModerators(nil) != "Sin advertencias registradas." {
		t.Error("formatModerators(nil) should return the empty notice")
	}
}

func TestFormatDays(t *testing.T) {
	rows := []store.DayCount{
		{Day: "2026-08-28", Count: 2},
		{Day: "2026-08-30", Count: 1},
	}

	got := formatDays(rows)
	want := "`2026-08-28`: 2 advertencia(s)\n`2026-08-30`: 1 advertencia(s)"
	if got != want {
		t.Errorf("formatDays = %q, want %q", got, want)
	}

	if formatDays(nil) != "Sin advertencias esta semana." {
		t.Error("formatDays(nil) should return the empty notice")
	}
}
