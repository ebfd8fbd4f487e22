package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestStyles_Colors(t *testing.T) {
	// Use TrueColor to properly test color codes
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })

	errText := errorStyle.Render("Error Message")
	if !strings.Contains(errText, "196") {
		t.Errorf("Expected error text to contain color 196, got %q", errText)
	}

	// lipgloss quantizes #7D56F4 to RGB(125, 86, 243)
	headerText := headerStyle.Render("Running benchmarks")
	if !strings.Contains(headerText, "48;2;125;86;243") {
		t.Errorf("Expected header to use the brand background, got %q", headerText)
	}
	if !strings.Contains(headerText, "Running benchmarks") {
		t.Fatal("Header text missing")
	}
}

func TestStyles_AsciiIsPlain(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	got := successStyle.Render("done")
	if strings.Contains(got, "\x1b[") {
		t.Errorf("Expected no escape sequences, got %q", got)
	}
}
