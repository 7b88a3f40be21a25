package registry

import (
	"reflect"
	"testing"
)

func TestTargetValidate(t *testing.T) {
	tests := []struct {
		name    string
		target  Target
		wantErr bool
	}{
		{
			name:   "valid",
			target: Target{Name: "ripgrep", Repo: "BurntSushi/ripgrep", Platforms: []string{"linux"}},
		},
		{
			name:   "valid without platforms",
			target: Target{Name: "mise", Repo: "jdx/mise"},
		},
		{
			name:    "missing name",
			target:  Target{Repo: "jdx/mise"},
			wantErr: true,
		},
		{
			name:    "name with path separator",
			target:  Target{Name: "../evil", Repo: "jdx/mise"},
			wantErr: true,
		},
		{
			name:    "repo without owner",
			target:  Target{Name: "mise", Repo: "mise"},
			wantErr: true,
		},
		{
			name:    "repo with empty owner",
			target:  Target{Name: "mise", Repo: "/mise"},
			wantErr: true,
		},
		{
			name:    "blank platform tag",
			target:  Target{Name: "mise", Repo: "jdx/mise", Platforms: []string{"  "}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRegistry(t *testing.T) {
	targets := []Target{
		{Name: "mise", Repo: "jdx/mise", Platforms: []string{"Linux", " MACOS "}},
		{Name: "ripgrep", Repo: "BurntSushi/ripgrep"},
	}

	reg, err := New(targets, []string{"linux"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if reg.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reg.Len())
	}

	// Tags are normalized to lower case
	mise, ok := reg.Lookup("mise")
	if !ok {
		t.Fatal("Lookup(mise) not found")
	}
	if want := []string{"linux", "macos"}; !reflect.DeepEqual(mise.Platforms, want) {
		t.Errorf("mise platforms = %v, want %v", mise.Platforms, want)
	}

	// Targets without tags inherit host tags
	rg, ok := reg.Lookup("ripgrep")
	if !ok {
		t.Fatal("Lookup(ripgrep) not found")
	}
	if want := []string{"linux"}; !reflect.DeepEqual(rg.Platforms, want) {
		t.Errorf("ripgrep platforms = %v, want %v", rg.Platforms, want)
	}

	if want := []string{"mise", "ripgrep"}; !reflect.DeepEqual(reg.Names(), want) {
		t.Errorf("Names() = %v, want %v", reg.Names(), want)
	}

	if _, ok := reg.Lookup("unknown"); ok {
		t.Error("Lookup(unknown) should not be found")
	}
}

func TestNewRegistryDuplicateNames(t *testing.T) {
	targets := []Target{
		{Name: "mise", Repo: "jdx/mise"},
		{Name: "mise", Repo: "other/mise"},
	}

	if _, err := New(targets, nil); err == nil {
		t.Error("expected error for duplicate target names")
	}
}

func TestTargetsReturnsCopy(t *testing.T) {
	reg, err := New([]Target{{Name: "mise", Repo: "jdx/mise"}}, []string{"linux"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := reg.Targets()
	got[0].Name = "mutated"

	if fresh := reg.Targets(); fresh[0].Name != "mise" {
		t.Error("Targets() should return a copy, registry was mutated")
	}
}

func TestDefault(t *testing.T) {
	reg, err := Default([]string{"linux"})
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if reg.Len() == 0 {
		t.Fatal("default registry is empty")
	}

	for _, target := range reg.Targets() {
		if err := target.Validate(); err != nil {
			t.Errorf("default target %s invalid: %v", target.Name, err)
		}
		if len(target.Platforms) == 0 {
			t.Errorf("default target %s has no platform tags after New", target.Name)
		}
	}
}
