package utils

import (
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "0:00"},
		{-5 * time.Second, "0:00"},
		{9 * time.Second, "0:09"},
		{59*time.Second + 900*time.Millisecond, "0:59"},
		{60 * time.Second, "1:00"},
		{3*time.Minute + 5*time.Second, "3:05"},
		{75 * time.Minute, "75:00"},
	}

	for _, test := range tests {
		result := FormatTime(test.duration)
		if result != test.expected {
			t.Errorf("FormatTime(%v) = %s; expected %s", test.duration, result, test.expected)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{60 * time.Second, "00:01:00"},
		{61*time.Minute + 1*time.Second, "01:01:01"},
		{25*time.Hour + 45*time.Minute + 30*time.Second, "25:45:30"},
	}

	for _, test := range tests {
		result := FormatDuration(test.duration)
		if result != test.expected {
			t.Errorf("FormatDuration(%v) = %s; expected %s", test.duration, result, test.expected)
		}
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a very long string", 10, "this is..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"abcde", 4, "a..."},
		{"Кино", 4, "Кино"},
	}

	for _, test := range tests {
		result := TruncateString(test.input, test.maxLen)
		if result != test.expected {
			t.Errorf("TruncateString(%s, %d) = %s; expected %s", test.input, test.maxLen, result, test.expected)
		}
	}
}

func TestTruncateWideRunes(t *testing.T) {
	// Иероглифы занимают две колонки
	result := TruncateString("日本語の歌", 7)
	if w := runewidth.StringWidth(result); w > 7 {
		t.Errorf("Ширина %q = %d, ожидалось не больше 7", result, w)
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("abcdefgh", 6); runewidth.StringWidth(got) != 6 {
		t.Errorf("PadRight должен обрезать до ширины 6, получено %q", got)
	}
}
