package primitives

import (
	"errors"
	"strings"
	"testing"
)

func TestStaticTableInsert(t *testing.T) {
	tests := []struct {
		name        string
		seed        Bag
		key         string
		wantErr     bool
		errContains string
	}{
		{
			name: "fresh key",
			key:  "version",
		},
		{
			name: "coexisting key",
			seed: Bag{"x": 1},
			key:  "y",
		},
		{
			name:        "redefinition",
			seed:        Bag{"x": 1},
			key:         "x",
			wantErr:     true,
			errContains: "already defined",
		},
		{
			name:        "reserved machinery name",
			key:         "create",
			wantErr:     true,
			errContains: "reserved",
		},
		{
			name:        "reserved init name",
			key:         InitKey,
			wantErr:     true,
			errContains: "reserved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewStaticTable()
			if err := table.Merge(tt.seed); err != nil {
				t.Fatalf("seed: %v", err)
			}
			err := table.Insert(tt.key, "value")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Insert() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			if !errors.Is(err, ErrDuplicateStatic) {
				t.Errorf("error %v is not ErrDuplicateStatic", err)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not contain %q", err, tt.errContains)
			}
		})
	}
}

func TestStaticTableMergeIsAllOrNothing(t *testing.T) {
	table := NewStaticTable()
	if err := table.Insert("b", 1); err != nil {
		t.Fatal(err)
	}

	err := table.Merge(Bag{"a": 1, "b": 2, "c": 3})
	if !errors.Is(err, ErrDuplicateStatic) {
		t.Fatalf("Merge() error = %v, want duplicate static", err)
	}
	if _, ok := table.Get("a"); ok {
		t.Error("failed merge must not define a")
	}
	if _, ok := table.Get("c"); ok {
		t.Error("failed merge must not define c")
	}
	if v, _ := table.Get("b"); v != 1 {
		t.Errorf("b = %v, want original 1", v)
	}
}

func TestStaticTableNamesInDefinitionOrder(t *testing.T) {
	table := NewStaticTable()
	_ = table.Insert("zeta", 1)
	_ = table.Merge(Bag{"beta": 2, "alpha": 3})

	got := table.Names()
	want := []string{"zeta", "alpha", "beta"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestStaticTableNilReads(t *testing.T) {
	var table *StaticTable
	if _, ok := table.Get("a"); ok {
		t.Error("nil Get should report false")
	}
	if table.Names() != nil {
		t.Error("nil Names should be nil")
	}
	if snap := table.Snapshot(); len(snap) != 0 {
		t.Errorf("nil Snapshot = %v, want empty", snap)
	}
}
