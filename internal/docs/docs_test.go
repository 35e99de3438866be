package docs

import (
	"strings"
	"testing"
)

func TestAllTopicsAreComplete(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("no topics registered")
	}
	seen := make(map[string]bool)
	for _, topic := range all {
		if topic.Name == "" || topic.Title == "" || topic.Summary == "" {
			t.Errorf("topic %+v has empty fields", topic)
		}
		if strings.TrimSpace(topic.Content) == "" {
			t.Errorf("topic %s has no content", topic.Name)
		}
		if seen[topic.Name] {
			t.Errorf("duplicate topic name %s", topic.Name)
		}
		seen[topic.Name] = true
	}
}

func TestGet(t *testing.T) {
	topic, ok := Get("publishing")
	if !ok {
		t.Fatal("publishing topic missing")
	}
	if topic.Name != "publishing" {
		t.Fatalf("Name = %q", topic.Name)
	}

	if _, ok := Get("no-such-topic"); ok {
		t.Fatal("unknown topic should not resolve")
	}
}
