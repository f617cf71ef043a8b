package tidycsv

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/jmylchreest/tidycsv/pkg/cleaner/tidy"
	"github.com/jmylchreest/tidycsv/pkg/table"
)

func loadTable(t *testing.T, csv string) *table.Table {
	t.Helper()
	tbl, err := table.Load([]byte(csv), table.DefaultLoadOptions())
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func strs(t *testing.T, tbl *table.Table, name string) []string {
	t.Helper()
	col, err := tbl.Column(name)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]string, col.Len())
	for i, v := range col.Values {
		out[i] = v.String()
	}
	return out
}

func assertStrings(t *testing.T, what string, got, want []string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("%s = %q, want %q", what, got, want)
	}
}

type progressLog struct {
	mu        sync.Mutex
	fractions []float64
	labels    []string
}

func (p *progressLog) record(fraction float64, label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fractions = append(p.fractions, fraction)
	p.labels = append(p.labels, label)
}

func endToEndTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		table.NewColumn("id", []table.Value{table.Text("1"), table.Text("2"), table.Text("3")}),
		table.NewColumn("body", []table.Value{
			table.Text("&amp;Hi &lt;b&gt;there&lt;/b&gt;"),
			table.Text("no markup"),
			table.Null(),
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestProcess_EndToEnd(t *testing.T) {
	t.Parallel()

	tbl := endToEndTable(t)
	cfg := tidy.Config{DecodeEntities: true, StripTags: true, NormalizeWhitespace: true, Suffix: "_cleaned"}

	out, stats, err := New().Process(context.Background(), tbl, "body", cfg, "body_cleaned")
	if err != nil {
		t.Fatal(err)
	}

	assertStrings(t, "columns", out.ColumnNames(), []string{"id", "body", "body_cleaned"})
	assertStrings(t, "body_cleaned", strs(t, out, "body_cleaned"), []string{"&Hi there", "no markup", ""})

	want := tidy.ColumnStats{TotalRows: 3, EmptyOriginal: 1, EmptyCleaned: 1, HTMLEntitiesFound: 1, HTMLTagsFound: 1}
	got := stats
	got.AvgLengthOriginal, got.AvgLengthCleaned = 0, 0
	if got != want {
		t.Errorf("stats = %+v, want counts %+v", stats, want)
	}

	// Input untouched.
	assertStrings(t, "input columns", tbl.ColumnNames(), []string{"id", "body"})
	if got := strs(t, out, "body")[0]; got != "&amp;Hi &lt;b&gt;there&lt;/b&gt;" {
		t.Errorf("original body changed: %q", got)
	}
}

func TestProcess_Errors(t *testing.T) {
	t.Parallel()

	tbl := endToEndTable(t)
	p := New()

	_, _, err := p.Process(context.Background(), tbl, "missing", tidy.DefaultConfig(), "x")
	var nf *table.ColumnNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want *ColumnNotFoundError", err)
	}
	if nf.Column != "missing" {
		t.Errorf("Column = %q, want missing", nf.Column)
	}

	_, _, err = p.Process(context.Background(), tbl, "body", tidy.DefaultConfig(), "id")
	if !errors.Is(err, table.ErrNameCollision) {
		t.Errorf("got %v, want ErrNameCollision", err)
	}
}

func TestProcess_ParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sb.WriteString("text\n")
	for i := 0; i < 5000; i++ {
		fmt.Fprintf(&sb, "\"<p>row %d &amp; <b>more</b></p>  https://x.io/%d \"\n", i, i%7)
	}
	tbl := loadTable(t, sb.String())
	cfg := tidy.PresetAggressive()

	seq, seqStats, err := New(WithWorkers(1)).Process(context.Background(), tbl, "text", cfg, "out")
	if err != nil {
		t.Fatal(err)
	}
	par, parStats, err := New(WithWorkers(8), WithCacheSize(64)).Process(context.Background(), tbl, "text", cfg, "out")
	if err != nil {
		t.Fatal(err)
	}

	parOut := strs(t, par, "out")
	if !slices.Equal(strs(t, seq, "out"), parOut) {
		t.Error("parallel output differs from sequential output")
	}
	if seqStats != parStats {
		t.Errorf("stats differ: sequential %+v, parallel %+v", seqStats, parStats)
	}
	if got := parOut[4999]; got != "row 4999 & more" {
		t.Errorf("last row = %q, want %q", got, "row 4999 & more")
	}
}

func TestProcessColumns_KeepOriginal(t *testing.T) {
	t.Parallel()

	tbl := loadTable(t, "a,b,a_cleaned\n<b>x</b>,&lt;y&gt;,taken\n")
	progress := &progressLog{}

	out, stats, err := New(WithProgress(progress.record)).
		ProcessColumns(context.Background(), tbl, []string{"a", "b"}, tidy.DefaultConfig(), true)
	if err != nil {
		t.Fatal(err)
	}

	assertStrings(t, "columns", out.ColumnNames(), []string{"a", "b", "a_cleaned", "a_cleaned_2", "b_cleaned"})
	assertStrings(t, "a_cleaned_2", strs(t, out, "a_cleaned_2"), []string{"x"})
	assertStrings(t, "b_cleaned", strs(t, out, "b_cleaned"), []string{""})
	if len(stats) != 2 {
		t.Errorf("len(stats) = %d, want 2", len(stats))
	}
	if got := stats["a"].HTMLTagsFound; got != 1 {
		t.Errorf("a tags found = %d, want 1", got)
	}

	if !slices.Equal(progress.fractions, []float64{0, 0.5, 1}) {
		t.Errorf("progress fractions = %v, want [0 0.5 1]", progress.fractions)
	}
	assertStrings(t, "progress labels", progress.labels, []string{"Processing a", "Processing b", "Done"})
	assertStrings(t, "input columns", tbl.ColumnNames(), []string{"a", "b", "a_cleaned"})
}

func TestProcessColumns_ReplaceInPlace(t *testing.T) {
	t.Parallel()

	tbl := loadTable(t, "a,b,c\n<i>1</i>,keep,&amp;\n")

	out, stats, err := New().ProcessColumns(context.Background(), tbl, []string{"c", "a"}, tidy.DefaultConfig(), false)
	if err != nil {
		t.Fatal(err)
	}

	assertStrings(t, "columns", out.ColumnNames(), []string{"a", "b", "c"})
	assertStrings(t, "a", strs(t, out, "a"), []string{"1"})
	assertStrings(t, "c", strs(t, out, "c"), []string{"&"})
	for _, name := range []string{"a", "c"} {
		if _, ok := stats[name]; !ok {
			t.Errorf("missing stats for %q", name)
		}
	}
	assertStrings(t, "input a", strs(t, tbl, "a"), []string{"<i>1</i>"})
}

func TestProcessColumns_ReplaceAcceptsEmptySuffix(t *testing.T) {
	t.Parallel()

	tbl := loadTable(t, "a\n<b>x</b>\n")
	cfg := tidy.DefaultConfig()
	cfg.Suffix = ""

	out, _, err := New().ProcessColumns(context.Background(), tbl, []string{"a"}, cfg, false)
	if err != nil {
		t.Fatalf("replacing in place should not need a suffix: %v", err)
	}
	assertStrings(t, "a", strs(t, out, "a"), []string{"x"})
}

func TestProcessColumns_Errors(t *testing.T) {
	t.Parallel()

	tbl := loadTable(t, "a\nx\n")
	progress := &progressLog{}
	p := New(WithProgress(progress.record))

	_, _, err := p.ProcessColumns(context.Background(), tbl, nil, tidy.DefaultConfig(), true)
	if !errors.Is(err, table.ErrEmptySelection) {
		t.Errorf("no columns: got %v, want ErrEmptySelection", err)
	}

	_, _, err = p.ProcessColumns(context.Background(), tbl, []string{"a", "zzz"}, tidy.DefaultConfig(), true)
	if !errors.Is(err, table.ErrColumnNotFound) {
		t.Errorf("unknown column: got %v, want ErrColumnNotFound", err)
	}

	bad := tidy.DefaultConfig()
	bad.Suffix = ""
	if _, _, err := p.ProcessColumns(context.Background(), tbl, []string{"a"}, bad, true); err == nil {
		t.Error("expected validation error for empty suffix")
	}

	if len(progress.fractions) != 0 {
		t.Errorf("failed runs reported progress: %v", progress.fractions)
	}
}

func TestProcessColumns_Cancelled(t *testing.T) {
	t.Parallel()

	tbl := loadTable(t, "a,b\nx,y\n")
	progress := &progressLog{}

	ctx, cancel := context.WithCancel(context.Background())
	p := New(WithProgress(func(fraction float64, label string) {
		progress.record(fraction, label)
		cancel()
	}))

	out, stats, err := p.ProcessColumns(ctx, tbl, []string{"a", "b"}, tidy.DefaultConfig(), true)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if out != nil || stats != nil {
		t.Error("cancelled run should return no results")
	}
	if slices.Contains(progress.fractions, 1.0) {
		t.Errorf("cancelled run reported completion: %v", progress.fractions)
	}
}

func TestProcessColumns_EmptyTable(t *testing.T) {
	t.Parallel()

	tbl := loadTable(t, "a\n")
	out, stats, err := New().ProcessColumns(context.Background(), tbl, []string{"a"}, tidy.DefaultConfig(), true)
	if err != nil {
		t.Fatal(err)
	}
	if out.RowCount() != 0 {
		t.Errorf("RowCount() = %d, want 0", out.RowCount())
	}
	if stats["a"] != (tidy.ColumnStats{}) {
		t.Errorf("stats = %+v, want zero", stats["a"])
	}
}

func TestProgress_Monotonic(t *testing.T) {
	t.Parallel()

	tbl := loadTable(t, "a,b,c,d\n1,2,3,4\n")
	progress := &progressLog{}

	_, _, err := New(WithProgress(progress.record)).
		ProcessColumns(context.Background(), tbl, []string{"a", "b", "c", "d"}, tidy.DefaultConfig(), true)
	if err != nil {
		t.Fatal(err)
	}

	if len(progress.fractions) != 5 {
		t.Fatalf("got %d progress updates, want 5", len(progress.fractions))
	}
	for i := 1; i < len(progress.fractions); i++ {
		if progress.fractions[i] < progress.fractions[i-1] {
			t.Errorf("progress went backwards: %v", progress.fractions)
		}
	}
	if last := progress.fractions[len(progress.fractions)-1]; last != 1 {
		t.Errorf("final progress = %v, want 1", last)
	}
}
