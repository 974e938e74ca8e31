package sync

import (
	"errors"
	"testing"
)

func TestCollectionReplace(t *testing.T) {
	c := NewCollection[string]()

	c.Replace([]string{"a", "b"})

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if c.LoadedAt().IsZero() {
		t.Error("expected LoadedAt to be stamped after Replace")
	}
}

func TestCollectionItemsReturnsCopy(t *testing.T) {
	c := NewCollection[string]()
	c.Replace([]string{"a", "b"})

	items := c.Items()
	items[0] = "mutated"

	if got := c.Items()[0]; got != "a" {
		t.Errorf("expected internal slice unchanged, got %q", got)
	}
}

func TestCollectionPrependOptimistic(t *testing.T) {
	c := NewCollection[int]()
	c.Replace([]int{2, 3})

	c.Prepend(1)

	items := c.Items()
	if items[0] != 1 {
		t.Errorf("expected optimistic item first, got %d", items[0])
	}
	if !c.HasOptimistic() {
		t.Error("expected HasOptimistic after Prepend")
	}
}

func TestCollectionReplaceDiscardsOptimistic(t *testing.T) {
	c := NewCollection[int]()
	c.Prepend(99)

	c.Replace([]int{1, 2})

	if c.HasOptimistic() {
		t.Error("expected optimistic flag cleared after Replace")
	}
	items := c.Items()
	if len(items) != 2 || items[0] != 1 {
		t.Errorf("expected server list to win, got %v", items)
	}
}

func TestCollectionReplaceClearsError(t *testing.T) {
	c := NewCollection[int]()
	c.setError(errors.New("backend down"))

	if c.LastError() == nil {
		t.Fatal("expected error to be recorded")
	}

	c.Replace([]int{1})

	if c.LastError() != nil {
		t.Errorf("expected error cleared after Replace, got %v", c.LastError())
	}
}

func TestCollectionBeginLoadGuard(t *testing.T) {
	c := NewCollection[int]()

	if !c.beginLoad() {
		t.Fatal("expected first beginLoad to succeed")
	}
	if c.beginLoad() {
		t.Error("expected second beginLoad to be refused while loading")
	}

	c.endLoad()

	if !c.beginLoad() {
		t.Error("expected beginLoad to succeed after endLoad")
	}
}

func TestCollectionLoadingFlag(t *testing.T) {
	c := NewCollection[int]()

	if c.Loading() {
		t.Error("expected not loading initially")
	}
	c.beginLoad()
	if !c.Loading() {
		t.Error("expected loading after beginLoad")
	}
	c.endLoad()
	if c.Loading() {
		t.Error("expected not loading after endLoad")
	}
}
