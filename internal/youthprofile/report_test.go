package youthprofile

import (
	"encoding/json"
	"testing"
)

func TestReportSet(t *testing.T) {
	r := newReport(2)

	if !r.set([]string{"firstName"}, "first") {
		t.Fatal("expected firstName to be set")
	}
	if r.set([]string{"firstName"}, "second") != true || r.FirstName != "first" {
		t.Fatalf("first message must win, got %q", r.FirstName)
	}
	if !r.set([]string{"addresses[1]", "city"}, "city") {
		t.Fatal("expected indexed address to be set")
	}
	if r.Addresses[0] != nil || r.Addresses[1] == nil || r.Addresses[1].City != "city" {
		t.Fatalf("unexpected addresses %+v", r.Addresses)
	}
	if !r.set([]string{"primaryAddress", "postalCode"}, "postal") {
		t.Fatal("expected primary address to be set")
	}
	if r.PrimaryAddress == nil || r.PrimaryAddress.PostalCode != "postal" {
		t.Fatalf("unexpected primary %+v", r.PrimaryAddress)
	}
}

func TestReportSetIgnoresUnknownPaths(t *testing.T) {
	r := newReport(1)

	for _, path := range [][]string{
		{"nickname"},
		{"addresses[1]", "city"},
		{"addresses[-1]", "city"},
		{"addresses[x]", "city"},
		{"addresses", "city"},
		{"primaryAddress", "street"},
		{"primaryAddress[0]", "city"},
		{"a", "b", "c"},
		{},
	} {
		if r.set(path, "msg") {
			t.Errorf("path %v should be ignored", path)
		}
	}
	if !r.IsEmpty() || r.PrimaryAddress != nil || r.Addresses[0] != nil {
		t.Fatalf("report must stay empty, got %+v", r)
	}
}

func TestReportIsEmptyLooksIntoAddresses(t *testing.T) {
	r := newReport(3)
	if !r.IsEmpty() {
		t.Fatal("fresh report must be empty")
	}
	r.Addresses[2] = &AddressErrors{CountryCode: "bad"}
	if r.IsEmpty() {
		t.Fatal("indexed address message must make the report non-empty")
	}

	r = newReport(0)
	r.PrimaryAddress = &AddressErrors{}
	if !r.IsEmpty() {
		t.Fatal("an address with no messages is still empty")
	}
}

func TestReportIssuesOrder(t *testing.T) {
	r := newReport(2)
	r.ApproverPhone = "p"
	r.Addresses[1] = &AddressErrors{City: "c", Address: "a"}
	r.FirstName = "f"
	r.PrimaryAddress = &AddressErrors{CountryCode: "cc"}

	want := []string{"firstName", "primaryAddress.countryCode", "addresses[1].address", "addresses[1].city", "approverPhone"}
	issues := r.Issues()
	if len(issues) != len(want) {
		t.Fatalf("expected %d issues, got %+v", len(want), issues)
	}
	for i, p := range want {
		if issues[i].Path != p {
			t.Errorf("issue %d: got %s, want %s", i, issues[i].Path, p)
		}
	}
}

func TestReportJSONKeepsAddressSlots(t *testing.T) {
	r := newReport(2)
	r.Addresses[1] = &AddressErrors{City: "required"}

	body, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"addresses":[null,{"city":"required"}]}`
	if string(body) != want {
		t.Fatalf("got %s, want %s", body, want)
	}
}
