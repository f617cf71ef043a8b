package table

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func texts(ss ...string) []Value {
	values := make([]Value, len(ss))
	for i, s := range ss {
		values[i] = Text(s)
	}
	return values
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := New(NewColumn("a", texts("1")), NewColumn("a", texts("2")))
	if !errors.Is(err, ErrNameCollision) {
		t.Errorf("duplicate names: got %v, want ErrNameCollision", err)
	}

	_, err = New(NewColumn("a", texts("1")), NewColumn("b", texts("1", "2")))
	if err == nil {
		t.Error("expected error for columns of different lengths")
	}
}

func TestTable_WithColumnCopies(t *testing.T) {
	t.Parallel()

	orig, err := New(NewColumn("a", texts("x", "y")))
	if err != nil {
		t.Fatal(err)
	}
	next, err := orig.WithColumn(NewColumn("b", texts("1", "2")))
	if err != nil {
		t.Fatal(err)
	}

	if got := orig.ColumnNames(); !slices.Equal(got, []string{"a"}) {
		t.Errorf("original columns = %v, want [a]", got)
	}
	if got := next.ColumnNames(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("new columns = %v, want [a b]", got)
	}

	_, err = next.WithColumn(NewColumn("a", texts("1", "2")))
	var nce *NameCollisionError
	if !errors.As(err, &nce) {
		t.Fatalf("got %v, want *NameCollisionError", err)
	}
	if nce.Name != "a" {
		t.Errorf("collision name = %q, want %q", nce.Name, "a")
	}
}

func TestTable_ReplaceColumn(t *testing.T) {
	t.Parallel()

	orig, err := New(NewColumn("a", texts("x")), NewColumn("b", texts("y")))
	if err != nil {
		t.Fatal(err)
	}

	next, err := orig.ReplaceColumn("a", NewColumn("a_clean", texts("X")))
	if err != nil {
		t.Fatal(err)
	}
	if got := next.ColumnNames(); !slices.Equal(got, []string{"a_clean", "b"}) {
		t.Errorf("replaced columns = %v, want [a_clean b]", got)
	}
	if got := orig.ColumnNames(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("original columns = %v, want [a b]", got)
	}

	if _, err := orig.ReplaceColumn("a", NewColumn("b", texts("X"))); !errors.Is(err, ErrNameCollision) {
		t.Errorf("got %v, want ErrNameCollision", err)
	}
	if _, err := orig.ReplaceColumn("zzz", NewColumn("c", texts("X"))); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("got %v, want ErrColumnNotFound", err)
	}
}

func TestTable_UniqueName(t *testing.T) {
	t.Parallel()

	tbl, err := New(
		NewColumn("body_cleaned", texts("x")),
		NewColumn("body_cleaned_2", texts("x")),
	)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		base string
		want string
	}{
		{"title_cleaned", "title_cleaned"},
		{"body_cleaned", "body_cleaned_3"},
	}
	for _, tt := range tests {
		if got := tbl.UniqueName(tt.base); got != tt.want {
			t.Errorf("UniqueName(%q) = %q, want %q", tt.base, got, tt.want)
		}
	}
}

func TestTable_ColumnNotFound(t *testing.T) {
	t.Parallel()

	tbl, err := New(NewColumn("a", texts("x")))
	if err != nil {
		t.Fatal(err)
	}

	_, err = tbl.Column("missing")
	if !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("got %v, want ErrColumnNotFound", err)
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("error %q should name the column", err)
	}
}

func TestInferType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []Value
		want   ColumnType
	}{
		{"empty", nil, TypeText},
		{"all null", []Value{Null(), Null()}, TypeText},
		{"integers", texts("1", "2", "3"), TypeNumeric},
		{"floats with null", []Value{Text("1.5"), Null(), Text("-2e3")}, TypeNumeric},
		{"categorical", texts("red", "red", "blue", "red"), TypeCategorical},
		{"free text", texts("the quick fox", "jumps over", "a lazy dog"), TypeText},
		{"mixed", texts("1", "two", "3"), TypeText},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := InferType(tt.values); got != tt.want {
				t.Errorf("InferType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue(t *testing.T) {
	t.Parallel()

	if !Null().IsNull() || !Null().IsEmpty() {
		t.Error("Null() should be null and empty")
	}
	if Text("").IsNull() || !Text("").IsEmpty() {
		t.Error(`Text("") should be empty but not null`)
	}
	if got := Null().String(); got != "" {
		t.Errorf("Null().String() = %q, want empty", got)
	}

	n := Number(2.5)
	if got := n.String(); got != "2.5" {
		t.Errorf("Number(2.5).String() = %q, want %q", got, "2.5")
	}
	if f, ok := n.Float(); !ok || f != 2.5 {
		t.Errorf("Number(2.5).Float() = %v, %v", f, ok)
	}
	if _, ok := Text("abc").Float(); ok {
		t.Error(`Text("abc").Float() should fail`)
	}
	if !Text("x").Equal(Text("x")) {
		t.Error("equal texts should compare equal")
	}
	if Text("").Equal(Null()) {
		t.Error("empty text should not equal null")
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	tbl, err := Load([]byte("color,n\nred,1\nred,2\n,3\nblue,\nred,4\n"), DefaultLoadOptions())
	if err != nil {
		t.Fatal(err)
	}

	infos := Describe(tbl)
	want := []ColumnInfo{
		{Name: "color", Type: TypeCategorical, NonNull: 4, Unique: 2},
		{Name: "n", Type: TypeNumeric, NonNull: 4, Unique: 4},
	}
	if !slices.Equal(infos, want) {
		t.Errorf("Describe() = %+v, want %+v", infos, want)
	}

	uniq, err := Unique(tbl, "color")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(uniq, []string{"red", "blue"}) {
		t.Errorf("Unique(color) = %v, want [red blue]", uniq)
	}

	lo, hi, err := Range(tbl, "n")
	if err != nil {
		t.Fatal(err)
	}
	if lo != 1 || hi != 4 {
		t.Errorf("Range(n) = %g..%g, want 1..4", lo, hi)
	}

	if _, _, err := Range(tbl, "color"); err == nil {
		t.Error("Range on a text column should fail")
	}
}
