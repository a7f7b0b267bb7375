package expression

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScopesShadowAndWalkToRoot(t *testing.T) {
	t.Parallel()

	store := NewStore(map[string]any{"theme": "dark"})
	outer := store.Root().Child()
	if err := outer.Declare("item", map[string]any{"title": "outer"}); err != nil {
		t.Fatalf("declare: %v", err)
	}
	inner := outer.Child()
	if err := inner.Declare("item", map[string]any{"title": "inner"}); err != nil {
		t.Fatalf("declare: %v", err)
	}

	if got, _ := inner.Lookup("item.title"); got != "inner" {
		t.Fatalf("inner lookup: want inner got %v", got)
	}
	if got, _ := outer.Lookup("item.title"); got != "outer" {
		t.Fatalf("outer lookup: want outer got %v", got)
	}
	if got, _ := inner.Lookup("global.theme"); got != "dark" {
		t.Fatalf("global lookup: want dark got %v", got)
	}
	if _, ok := store.Root().Lookup("item"); ok {
		t.Fatalf("root must not see child contexts")
	}
}

func TestSetNotifiesSubscribers(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	scope := store.Root().Child()
	if err := scope.Declare("cart", map[string]any{"items": []any{}}); err != nil {
		t.Fatalf("declare: %v", err)
	}

	var changes []Change
	unsubscribe := store.Subscribe(func(c Change) { changes = append(changes, c) })

	if err := scope.Child().Set("cart", "items[0].name", "book"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _ := scope.Lookup("cart")
	want := map[string]any{"items": []any{map[string]any{"name": "book"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cart mismatch (-want +got):\n%s", diff)
	}
	if len(changes) != 1 || changes[0].ContextID != "cart" || changes[0].Scope != scope {
		t.Fatalf("unexpected changes: %+v", changes)
	}

	unsubscribe()
	unsubscribe()
	if err := scope.Set("global", "", map[string]any{"a": 1}); err != nil {
		t.Fatalf("set global: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("unsubscribed listener was notified")
	}
}

func TestSetUnknownContext(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	err := store.Root().Set("missing", "", 1)
	if !errors.Is(err, ErrUnknownContext) {
		t.Fatalf("want ErrUnknownContext got %v", err)
	}
}

func TestLookupDoesNotAliasStoredValues(t *testing.T) {
	t.Parallel()

	source := map[string]any{"n": 1}
	store := NewStore(nil)
	if err := store.Root().Declare("data", source); err != nil {
		t.Fatalf("declare: %v", err)
	}
	source["n"] = 2

	got, _ := store.Root().Lookup("data.n")
	if got != 1.0 {
		t.Fatalf("declare must copy input, got %v", got)
	}
}

func TestSetIndexGrowsByOneAtMost(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	scope := store.Root()
	if err := scope.Declare("list", []any{"a"}); err != nil {
		t.Fatalf("declare: %v", err)
	}

	if err := scope.Set("list", "[1]", "b"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := scope.Set("list", "[0]", "z"); err != nil {
		t.Fatalf("replace: %v", err)
	}
	for _, path := range []string{"[3]", "[100000000000]"} {
		if err := scope.Set("list", path, 1); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("%s: want ErrIndexOutOfRange got %v", path, err)
		}
	}

	got, _ := scope.Lookup("list")
	if diff := cmp.Diff([]any{"z", "b"}, got); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}
