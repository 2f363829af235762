package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestIDUnmarshal(t *testing.T) {
	tests := []struct {
		input string
		want  ID
	}{
		{`1`, "1"},
		{`"1"`, "1"},
		{`1.0`, "1"},
		{`"a3f0c0f2"`, "a3f0c0f2"},
		{`null`, ""},
	}

	for _, test := range tests {
		var id ID
		if err := json.Unmarshal([]byte(test.input), &id); err != nil {
			t.Fatalf("Unmarshal(%s) got error %v", test.input, err)
		}
		if id != test.want {
			t.Fatalf("Unmarshal(%s) = %q, want %q", test.input, id, test.want)
		}
	}

	var id ID
	if err := json.Unmarshal([]byte(`true`), &id); err == nil {
		t.Fatalf("Unmarshal(true) = %q, want an error", id)
	}
}

func TestIDMarshal(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{"1", `1`},
		{"01", `"01"`},
		{"a3f0c0f2", `"a3f0c0f2"`},
		{"", `""`},
	}

	for _, test := range tests {
		data, err := json.Marshal(test.id)
		if err != nil {
			t.Fatalf("Marshal(%q) got error %v", test.id, err)
		}
		if string(data) != test.want {
			t.Fatalf("Marshal(%q) = %s, want %s", test.id, data, test.want)
		}
	}
}

func TestIDMatches(t *testing.T) {
	tests := []struct {
		a, b ID
		want bool
	}{
		{"1", "1", true},
		{"1", "01", true},
		{"1", "2", false},
		{"abc", "abc", true},
		{"abc", "ABC", false},
		{"", "", false},
		{"0", "", false},
	}

	for _, test := range tests {
		if got := test.a.Matches(test.b); got != test.want {
			t.Fatalf("ID(%q).Matches(%q) = %v, want %v", test.a, test.b, got, test.want)
		}
	}
}

func TestPostDecode(t *testing.T) {
	var posts []Post
	body := `[{"id":5,"title":"a","body":"b","userId":1,"timestamp":"100"},{"id":6,"userId":"1","timestamp":200}]`
	if err := json.Unmarshal([]byte(body), &posts); err != nil {
		t.Fatalf("Unmarshal got error %v", err)
	}

	if posts[0].UserId != "1" || posts[1].UserId != "1" {
		t.Fatalf("userId = %q and %q, want both \"1\"", posts[0].UserId, posts[1].UserId)
	}
	if posts[0].Timestamp != "100" || posts[1].Timestamp != "200" {
		t.Fatalf("timestamp = %q and %q, want \"100\" and \"200\"", posts[0].Timestamp, posts[1].Timestamp)
	}
}

func TestPostEncode(t *testing.T) {
	post := Post{Id: 7, Title: "Hi", Body: "World", UserId: "1", Timestamp: "1700000000"}

	data, err := json.Marshal(post)
	if err != nil {
		t.Fatalf("Marshal got error %v", err)
	}

	want := `{"id":7,"title":"Hi","body":"World","userId":1,"timestamp":"1700000000"}`
	if string(data) != want {
		t.Fatalf("Marshal = %s, want %s", data, want)
	}
}

func TestTimestamp(t *testing.T) {
	now := time.Unix(1700000000, 0)
	ts := NewTimestamp(now)

	if ts != "1700000000" {
		t.Fatalf("NewTimestamp = %q, want \"1700000000\"", ts)
	}
	if !ts.Time().Equal(now) {
		t.Fatalf("Time() = %v, want %v", ts.Time(), now)
	}

	if Timestamp("nope").Seconds() >= Timestamp("0").Seconds() {
		t.Fatalf("invalid timestamp should sort before zero")
	}
	if !Timestamp("nope").Time().IsZero() {
		t.Fatalf("Time() of an invalid timestamp should be zero")
	}
}
