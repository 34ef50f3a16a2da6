package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sagewood/corpus/extract"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLocalEnumerateAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "rules/manual.pdf", "pdf-bytes")
	writeFile(t, root, "tournament_results/2026-02-14_regional.csv", "school,rank,total\n")
	writeFile(t, root, "loose.txt", "no topic")

	enum, err := NewLocalEnumerator(root)
	if err != nil {
		t.Fatal(err)
	}

	descriptors, err := enum.Enumerate(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(descriptors) != 3 {
		t.Fatalf("Expected 3 descriptors, got %d", len(descriptors))
	}

	byName := map[string]Descriptor{}
	for _, d := range descriptors {
		byName[d.Filename] = d
	}

	if d := byName["manual.pdf"]; d.Topic != "rules" || d.Format != extract.FormatPDF {
		t.Errorf("manual.pdf: topic=%q format=%v", d.Topic, d.Format)
	}
	if d := byName["2026-02-14_regional.csv"]; d.Topic != "tournament results" || d.Format != extract.FormatCSV {
		t.Errorf("csv: topic=%q format=%v", d.Topic, d.Format)
	}
	if d := byName["loose.txt"]; d.Topic != "" {
		t.Errorf("Root-level file must have no topic, got %q", d.Topic)
	}
}

func TestLocalEnumerateTopicScoped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "rules/manual.txt", "rules text")
	writeFile(t, root, "events/schedule.txt", "events text")

	enum, err := NewLocalEnumerator(root)
	if err != nil {
		t.Fatal(err)
	}

	descriptors, err := enum.Enumerate(context.Background(), "Rules")
	if err != nil {
		t.Fatal(err)
	}
	if len(descriptors) != 1 {
		t.Fatalf("Expected 1 descriptor, got %d", len(descriptors))
	}
	if descriptors[0].Topic != "rules" {
		t.Errorf("Topic = %q, want the normalized filter", descriptors[0].Topic)
	}
}

func TestLocalEnumerateMissingTopicDir(t *testing.T) {
	enum, err := NewLocalEnumerator(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	descriptors, err := enum.Enumerate(context.Background(), "nonexistent topic")
	if err != nil {
		t.Fatalf("Missing topic directory must degrade, not fail: %v", err)
	}
	if len(descriptors) != 0 {
		t.Fatalf("Expected empty enumeration, got %d", len(descriptors))
	}
}

func TestLocalDescriptorLoad(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "rules/manual.txt", "the manual content")

	enum, _ := NewLocalEnumerator(root)
	descriptors, err := enum.Enumerate(context.Background(), "rules")
	if err != nil {
		t.Fatal(err)
	}

	data, err := descriptors[0].Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "the manual content" {
		t.Fatalf("Load = %q", data)
	}

	if !filepath.IsAbs(descriptors[0].SourcePath) {
		t.Fatalf("SourcePath must be absolute, got %q", descriptors[0].SourcePath)
	}
}

func TestObjectURI(t *testing.T) {
	if got := ObjectURI("corpus", "rules/manual.pdf"); got != "s3://corpus/rules/manual.pdf" {
		t.Fatalf("ObjectURI = %q", got)
	}
}
