package catalog

import (
	"errors"
	"testing"
)

func fixtureRecords() []ToolRecord {
	return []ToolRecord{
		{Name: "search", Description: "web search", RequiredCredentials: []string{"SEARCH_KEY"}},
		{Name: "reader", Description: "file reader"},
		{Name: "cloud", Description: "cloud storage", RequiredCredentials: []string{"CLOUD_ID", "CLOUD_SECRET"}},
	}
}

func fixtureCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := New()
	for _, record := range fixtureRecords() {
		if err := c.Register(record); err != nil {
			t.Fatalf("Failed to register %s: %v", record.Name, err)
		}
	}
	return c
}

func TestCatalogRegisterAndGet(t *testing.T) {
	c := fixtureCatalog(t)

	if c.Len() != 3 {
		t.Errorf("Expected 3 records, got %d", c.Len())
	}

	record, ok := c.Get("reader")
	if !ok {
		t.Fatal("Expected reader to be registered")
	}
	if record.Description != "file reader" {
		t.Errorf("Unexpected description: %s", record.Description)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Expected missing tool to not be found")
	}
}

func TestCatalogDuplicateName(t *testing.T) {
	c := fixtureCatalog(t)

	err := c.Register(ToolRecord{Name: "search", Description: "another search"})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("Expected ErrDuplicateName, got %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("Failed registration must not grow the catalog, got %d", c.Len())
	}
}

func TestCatalogRequiresName(t *testing.T) {
	c := New()
	if err := c.Register(ToolRecord{Description: "anonymous"}); err == nil {
		t.Error("Expected registration without a name to fail")
	}
}

func TestCatalogListAllPreservesOrder(t *testing.T) {
	c := fixtureCatalog(t)

	records := c.ListAll()
	want := []string{"search", "reader", "cloud"}
	for i, name := range want {
		if records[i].Name != name {
			t.Errorf("Expected %s at position %d, got %s", name, i, records[i].Name)
		}
	}
}

func TestCatalogListAllReturnsCopy(t *testing.T) {
	c := fixtureCatalog(t)

	records := c.ListAll()
	records[0].Name = "mutated"

	fresh := c.ListAll()
	if fresh[0].Name != "search" {
		t.Error("Mutating the returned slice must not affect the catalog")
	}
}

func TestUsableFiltersByCredentials(t *testing.T) {
	records := fixtureRecords()

	tests := []struct {
		name string
		env  Environment
		want []string
	}{
		{"nothing present", Environment{}, []string{"reader"}},
		{"search key present", Environment{"SEARCH_KEY": true}, []string{"search", "reader"}},
		{"partial cloud credentials", Environment{"CLOUD_ID": true}, []string{"reader"}},
		{"everything present", Environment{"SEARCH_KEY": true, "CLOUD_ID": true, "CLOUD_SECRET": true}, []string{"search", "reader", "cloud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usable := Usable(records, tt.env)
			if len(usable) != len(tt.want) {
				t.Fatalf("Expected %d usable tools, got %d", len(tt.want), len(usable))
			}
			for i, name := range tt.want {
				if usable[i].Name != name {
					t.Errorf("Expected %s at position %d, got %s", name, i, usable[i].Name)
				}
			}
		})
	}
}

func TestUsableIsIdempotent(t *testing.T) {
	records := fixtureRecords()
	env := Environment{"SEARCH_KEY": true}

	first := Usable(records, env)
	second := Usable(first, env)
	if len(first) != len(second) {
		t.Errorf("Filtering a filtered set must be a no-op: %d vs %d", len(first), len(second))
	}
}

func TestEnvironmentFromOS(t *testing.T) {
	t.Setenv("CATALOG_TEST_PRESENT", "value")
	t.Setenv("CATALOG_TEST_EMPTY", "")

	records := []ToolRecord{
		{Name: "a", RequiredCredentials: []string{"CATALOG_TEST_PRESENT", "CATALOG_TEST_EMPTY", "CATALOG_TEST_UNSET"}},
	}
	env := EnvironmentFromOS(records)

	if !env["CATALOG_TEST_PRESENT"] {
		t.Error("Set variable must count as present")
	}
	if env["CATALOG_TEST_EMPTY"] {
		t.Error("Empty variable must not count as present")
	}
	if env["CATALOG_TEST_UNSET"] {
		t.Error("Unset variable must not count as present")
	}
}
