package escape_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/perbu/vstestrun/pkg/escape"
)

func TestEscape(t *testing.T) {
	for _, c := range []struct {
		in, exp string
	}{
		{``, `""`},
		{`ab`, `ab`},
		{`run.settings`, `run.settings`},
		{`C:\tests\bin`, `C:\tests\bin`},
		{`/t/tests.dll`, `/t/tests.dll`},
		{`a b`, `"a b"`},
		{"a\tb", "\"a\tb\""},
		{`Code Coverage;Format=Cobertura`, `"Code Coverage;Format=Cobertura"`},
		{`a"b`, `a\"b`},
		{`"`, `\"`},
		{`a\\"b`, `a\\\\\"b`},
		{`a\"b`, `a\"b`},
		{`a b\`, `"a b\\"`},
		{`C:\Program Files\`, `"C:\Program Files\\"`},
		{`say "hi" now`, `"say \"hi\" now"`},
		{`"already quoted"`, `"already quoted"`},
		{`""`, `""`},
		{`trailing\`, `trailing\`},
	} {
		if s := escape.Escape(c.in); s != c.exp {
			t.Errorf("Escape(%q) = %q; want %q", c.in, s, c.exp)
		}
	}
}

func TestEscapeIdempotent(t *testing.T) {
	for _, in := range []string{
		``,
		`plain`,
		`a"b`,
		`"`,
		`""x`,
		`x""`,
		`a\\"b`,
		`with space`,
		`with "quoted" space`,
		`C:\Program Files\`,
		`ends with quote"`,
		`"starts with quote`,
		"tab\tand \"quote\"\\",
		`\\\"`,
	} {
		once := escape.Escape(in)
		twice := escape.Escape(once)
		if once != twice {
			t.Errorf("Escape(Escape(%q)) = %q; want %q", in, twice, once)
		}
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	for _, in := range []string{
		`plain`,
		`a b`,
		`a"b`,
		`"leading`,
		`trailing"`,
		`two\\"slashes`,
		`C:\Program Files\`,
		`C:\Program Files\dotnet\dotnet.exe`,
		`say "hi" now`,
		"tab\tseparated",
		`Code Coverage;Format=Cobertura`,
		`FullyQualifiedName~Name&Priority=1`,
		``,
	} {
		got := escape.Split(escape.Escape(in))
		if diff := cmp.Diff([]string{in}, got); diff != "" {
			t.Errorf("Split(Escape(%q)) mismatch (-want +got):\n%s", in, diff)
		}
	}
}

func TestEscapeSlice(t *testing.T) {
	got := escape.EscapeSlice([]string{"a", "b c", `d"e`})
	want := []string{"a", `"b c"`, `d\"e`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EscapeSlice mismatch (-want +got):\n%s", diff)
	}
}

func TestJoinThenSplit(t *testing.T) {
	values := []string{"--settings:run.settings", `C:\My Tests\tests.dll`, `--`, `RunConfiguration.Name="x y"`}
	cmdline := escape.Join(escape.EscapeSlice(values))
	if diff := cmp.Diff(values, escape.Split(cmdline)); diff != "" {
		t.Errorf("Split(%q) mismatch (-want +got):\n%s", cmdline, diff)
	}
}

func TestSplit(t *testing.T) {
	for _, c := range []struct {
		in  string
		exp []string
	}{
		{``, nil},
		{`   `, nil},
		{`a b  c`, []string{"a", "b", "c"}},
		{"a\tb", []string{"a", "b"}},
		{`"a b" c`, []string{"a b", "c"}},
		{`a\b`, []string{`a\b`}},
		{`a\\b`, []string{`a\\b`}},
		{`a\"b`, []string{`a"b`}},
		{`a\\"b c"`, []string{`a\b c`}},
		{`"a""b"`, []string{`a"b`}},
		{`""`, []string{""}},
		{`--Blame:"CollectDump;DumpType=full"`, []string{`--Blame:CollectDump;DumpType=full`}},
		{`--collect:"Code Coverage"`, []string{`--collect:Code Coverage`}},
	} {
		got := escape.Split(c.in)
		if diff := cmp.Diff(c.exp, got); diff != "" {
			t.Errorf("Split(%q) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}
