package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("creditflow %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestValidateCommand(t *testing.T) {
	record := `{
		"ProcessingIndicator": "A",
		"IdentificationNumber": "FURN0001",
		"AccountNumber": "4000123412341234",
		"PortfolioType": "R",
		"AccountType": "01",
		"DateOpened": "2030-01-01",
		"AccountStatus": "13",
		"PaymentRating": "1",
		"PaymentHistoryProfile": "111111111111111111111111",
		"DateReported": "2025-06-01",
		"Surname": "Walker",
		"FirstName": "Dana",
		"SSN": "123456789",
		"ECOACode": "1",
		"Address1": "100 Main St",
		"City": "Dallas",
		"State": "TX",
		"ZipCode": "75201"
	}`
	path := filepath.Join(t.TempDir(), "record.json")
	if err := os.WriteFile(path, []byte(record), 0o600); err != nil {
		t.Fatalf("write record: %v", err)
	}

	out := runCommand(t, "validate", path)
	if !strings.Contains(out, "FUTURE_DATE_OPENED") {
		t.Errorf("output missing violation:\n%s", out)
	}
	if !strings.Contains(out, "dispute reasons:") {
		t.Errorf("output missing dispute reasons:\n%s", out)
	}
}

func TestValidateCommandRejectsMissingFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"validate", filepath.Join(t.TempDir(), "absent.json")})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("missing record file must fail")
	}
}

func TestTemplatesCommand(t *testing.T) {
	out := runCommand(t, "templates")
	for _, want := range []string{"not_mine", "furnisher", "escalation", "FCRA 611(a)(1)(A)"} {
		if !strings.Contains(out, want) {
			t.Errorf("templates output missing %q:\n%s", want, out)
		}
	}
}
