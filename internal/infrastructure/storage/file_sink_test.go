package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dorisurararara-crypto/auto-blog/internal/domain"
)

func TestSanitizeTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Best Smartwatch 2025", "Best_Smartwatch_2025"},
		{"path unsafe characters", `Pixel 10 vs iPhone: "worth it?"`, "Pixel_10_vs_iPhone_worth_it"},
		{"slashes stripped", "a/b\\c", "abc"},
		{"truncated", strings.Repeat("x", 80), strings.Repeat("x", 50)},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeTitle(tt.title); got != tt.want {
				t.Fatalf("SanitizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestFileSinkWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink := NewFileSink(filepath.Join(dir, "blog"))

	pub := domain.Publication{
		TopicID:  "t3_abc123",
		Category: "Gadgets",
		Article: domain.ParsedArticle{
			Title:   "Best Smartwatch 2025",
			Summary: "A short roundup.",
			Body:    "Full comparison here.",
		},
		ImagePath: "/images/smartwatch.png",
		Date:      time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
	}

	path, err := sink.Write(context.Background(), pub)
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	wantName := "20250901_Best_Smartwatch_2025.md"
	if filepath.Base(path) != wantName {
		t.Fatalf("unexpected filename: %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `title: "Best Smartwatch 2025"`) {
		t.Fatalf("front matter missing title:\n%s", content)
	}
	if !strings.Contains(content, "Full comparison here.") {
		t.Fatalf("body missing:\n%s", content)
	}
}

func TestFileSinkWriteUntitled(t *testing.T) {
	t.Parallel()

	sink := NewFileSink(t.TempDir())

	pub := domain.Publication{
		TopicID: "t3_blank",
		Date:    time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	path, err := sink.Write(context.Background(), pub)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Base(path) != "20250901_no_title.md" {
		t.Fatalf("unexpected filename: %s", filepath.Base(path))
	}
}
