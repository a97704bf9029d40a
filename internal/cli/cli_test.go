package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// --- validate ---

func TestValidate_OK(t *testing.T) {
	out, err := run(t, "validate", "--text", "hello", "--at", "2999-01-01T09:00", "--account", "h1")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if strings.TrimSpace(out) != "OK" {
		t.Errorf("output = %q, want OK", out)
	}
}

func TestValidate_ListsIssues(t *testing.T) {
	out, err := run(t, "validate", "--text", " ", "--at", "2020-01-01T09:00", "--media", "a.gif,b.mp4")
	if err != errInvalid {
		t.Fatalf("err = %v, want errInvalid", err)
	}
	for _, want := range []string{
		"- Text is required",
		"- Scheduled time must be in the future",
		"- Handle is required",
		"- GIF cannot mix with images/videos",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestValidate_PastAllowedWithoutFuturity(t *testing.T) {
	_, err := run(t, "validate", "--text", "t", "--at", "2020-01-01T09:00", "-a", "h1", "--require-future=false")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_JSON(t *testing.T) {
	out, err := run(t, "--json", "validate", "--text", "t", "--at", "bogus", "-a", "h1")
	if err != errInvalid {
		t.Fatalf("err = %v, want errInvalid", err)
	}
	var got struct {
		Issues []string `json:"issues"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(got.Issues) != 1 || got.Issues[0] != "Scheduled date is invalid" {
		t.Errorf("issues = %v", got.Issues)
	}
}

// --- expand ---

func TestExpand(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "none ignores count",
			args: []string{"expand", "--at", "2026-01-31T09:00", "--count", "5"},
			want: []string{"2026-01-31T09:00:00Z"},
		},
		{
			name: "weekly",
			args: []string{"expand", "--at", "2026-01-31T09:00", "-r", "weekly", "-n", "3"},
			want: []string{"2026-01-31T09:00:00Z", "2026-02-07T09:00:00Z", "2026-02-14T09:00:00Z"},
		},
		{
			name: "monthly is thirty days",
			args: []string{"expand", "--at", "2026-01-31T09:00", "-r", "monthly", "-n", "2"},
			want: []string{"2026-01-31T09:00:00Z", "2026-03-02T09:00:00Z"},
		},
		{
			name: "zone applies to naive times",
			args: []string{"--tz", "Asia/Tokyo", "expand", "--at", "2026-01-31T09:00", "-r", "daily", "-n", "2"},
			want: []string{"2026-01-31T09:00:00+09:00", "2026-02-01T09:00:00+09:00"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := run(t, c.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := strings.Split(strings.TrimSpace(out), "\n")
			if strings.Join(got, "|") != strings.Join(c.want, "|") {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestExpand_ClampsCount(t *testing.T) {
	out, err := run(t, "expand", "--at", "2026-01-01T09:00", "-r", "daily", "-n", "100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(strings.Split(strings.TrimSpace(out), "\n")); n != 30 {
		t.Errorf("got %d occurrences, want 30", n)
	}
}

func TestExpand_Errors(t *testing.T) {
	if _, err := run(t, "expand"); err == nil {
		t.Error("expected error when --at is missing")
	}
	if _, err := run(t, "expand", "--at", "tomorrow"); err == nil {
		t.Error("expected error for unparseable --at")
	}
	if _, err := run(t, "--tz", "Nowhere/City", "expand", "--at", "2026-01-01T09:00"); err == nil {
		t.Error("expected error for unknown zone")
	}
}

// --- csv check ---

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "posts.csv")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCSVCheck(t *testing.T) {
	p := writeCSV(t, "Text,Image URL,Tags,Posting Time\n"+
		"ok,,,2026-11-01 09:00\n"+
		",,,2026-11-01 10:00\n"+
		"bad media,https://x.test/file.pdf,,2026-11-01 11:00\n")

	out, err := run(t, "csv", "check", p)
	if err != errInvalid {
		t.Fatalf("err = %v, want errInvalid", err)
	}
	for _, want := range []string{
		"line 3: Text is required",
		"line 4: Invalid media: https://x.test/file.pdf",
		"1 of 3 rows valid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCSVCheck_AllValidJSON(t *testing.T) {
	p := writeCSV(t, "text,scheduledAt\nhello,2020-01-01 09:00\n")

	out, err := run(t, "--json", "csv", "check", p)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	var report csvReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if report.Rows != 1 || report.Valid != 1 || len(report.Invalid) != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestCSVCheck_Errors(t *testing.T) {
	if _, err := run(t, "csv", "check"); err == nil {
		t.Error("expected error without a file argument")
	}
	if _, err := run(t, "csv", "check", filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for a missing file")
	}
	if _, err := run(t, "csv", "check", writeCSV(t, "Name,When\nx,y\n")); err == nil {
		t.Error("expected error for a file without a Text column")
	}
}
