package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	// Create a new logger without webhooks
	l := NewLogger("", "")
	if l == nil {
		t.Fatal("Expected logger to be created, got nil")
	}

	// Test that logger methods don't panic
	l.Info("Test info message", "TEST")
	l.Warn("Test warning message", "TEST")
	l.Debug("Test debug message", "TEST")
	l.System("Test system message", "TEST")
	l.Success("Test success message", "TEST")

	l.Close()
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelCritical, "CRITICAL"},
		{LevelError, "ERROR"},
		{LevelWarn, "WARN"},
		{LevelSuccess, "SUCCESS"},
		{LevelInfo, "INFO"},
		{LevelDebug, "DEBUG"},
		{LevelSystem, "SYSTEM"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLogLevelColor(t *testing.T) {
	levels := []LogLevel{
		LevelCritical,
		LevelError,
		LevelWarn,
		LevelSuccess,
		LevelInfo,
		LevelDebug,
		LevelSystem,
	}

	for _, level := range levels {
		if level.Color() == "" {
			t.Errorf("LogLevel(%d).Color() returned empty string", level)
		}
		if level.DiscordColor() == 0 && level != LevelCritical {
			// 0 would render as black in Discord; every level maps to a color
			t.Errorf("LogLevel(%d).DiscordColor() returned 0", level)
		}
	}
}

func TestCombinedLogFileReceivesMessages(t *testing.T) {
	l := NewLogger("", "")
	l.Info("linea de prueba para el archivo combinado", "TEST")
	l.Close()

	data, err := os.ReadFile(filepath.Join("logs", "combined.log"))
	if err != nil {
		t.Fatalf("reading combined log: %v", err)
	}

	if !strings.Contains(string(data), "linea de prueba para el archivo combinado") {
		t.Error("combined log does not contain the logged message")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	// Package-level helpers must initialize the global logger on demand
	Info("Package level info", "TEST")
	Debug("Package level debug", "TEST")

	if Get() == nil {
		t.Fatal("Get() returned nil after package-level logging")
	}
}
