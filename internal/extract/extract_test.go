package extract

import "testing"

func TestFieldsNameAndAddress(t *testing.T) {
	fields := Fields("My name is John Doe, I live at 123 Main Street")

	if fields[KeyName] != "John Doe" {
		t.Fatalf("name = %q, want %q", fields[KeyName], "John Doe")
	}
	if fields[KeyAddress] != "123 Main Street" {
		t.Fatalf("address = %q, want %q", fields[KeyAddress], "123 Main Street")
	}
}

func TestFieldsNameVariants(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"my name is Priya Sharma and I need a letter", "Priya Sharma and I need a letter"},
		{"I, Rahul Kumar Verma, request an affidavit", "Rahul Kumar Verma"},
		{"Please address it to Anil Mehta", "Anil Mehta"},
	}
	for _, tc := range cases {
		got := Fields(tc.text)[KeyName]
		if got != tc.want {
			t.Errorf("Fields(%q) name = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestFieldsSingleWordNameOmitted(t *testing.T) {
	fields := Fields("my name is John")
	if _, ok := fields[KeyName]; ok {
		t.Fatalf("single-word name should be omitted, got %q", fields[KeyName])
	}
}

func TestFieldsAddressWithPostalCode(t *testing.T) {
	fields := Fields("I am residing at 42 Gandhi Road, Mumbai, 400001")
	if fields[KeyAddress] == "" {
		t.Fatal("expected address match")
	}
}

func TestFieldsDateNormalized(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"dated 05/03/2026 please", "05/03/2026"},
		{"sign it on date 2026-03-05", "05/03/2026"},
		{"needed by 5 March 2026", "05/03/2026"},
	}
	for _, tc := range cases {
		got := Fields(tc.text)[KeyDate]
		if got != tc.want {
			t.Errorf("Fields(%q) date = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestFieldsID(t *testing.T) {
	fields := Fields("my passport number is N1234567")
	if fields[KeyID] != "N1234567" {
		t.Fatalf("id = %q, want %q", fields[KeyID], "N1234567")
	}
}

func TestFieldsEmptyOnNoise(t *testing.T) {
	fields := Fields("hello there, how are you?")
	if len(fields) != 0 {
		t.Fatalf("expected no fields, got %v", fields)
	}
}
