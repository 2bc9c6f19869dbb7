package main

import (
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestMemoryStoreListsInInsertionOrder(t *testing.T) {
	s := newMemoryStore()
	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		if err := s.CreateTask(&TaskRecord{UserID: "u1", Title: title}); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}

	recs, err := s.TasksByUser("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != len(titles) {
		t.Fatalf("got %d records, want %d", len(recs), len(titles))
	}
	for i, rec := range recs {
		if rec.Title != titles[i] {
			t.Errorf("position %d: got %q, want %q", i, rec.Title, titles[i])
		}
		if rec.ID == "" || rec.CreatedAt.IsZero() {
			t.Errorf("record %d missing assigned fields: %+v", i, rec)
		}
	}
}

func TestMemoryStoreUpdateBumpsVersion(t *testing.T) {
	s := newMemoryStore()
	rec := TaskRecord{UserID: "u1", Title: "t"}
	if err := s.CreateTask(&rec); err != nil {
		t.Fatal(err)
	}
	if rec.Version != 1 {
		t.Fatalf("fresh record version = %d, want 1", rec.Version)
	}

	updated, err := s.UpdateTask(rec.ID, TaskPatch{Title: strPtr("t2")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Version != 2 || updated.Title != "t2" {
		t.Errorf("after update: %+v", updated)
	}

	if _, err := s.UpdateTask(rec.ID, TaskPatch{Title: strPtr("t3"), ExpectedVersion: intPtr(1)}); !errors.Is(err, ErrStaleVersion) {
		t.Errorf("stale update err = %v, want ErrStaleVersion", err)
	}
	if _, err := s.UpdateTask("missing", TaskPatch{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing update err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := newMemoryStore()
	rec := TaskRecord{UserID: "u1", Title: "t"}
	if err := s.CreateTask(&rec); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteTask(rec.ID, intPtr(2)); !errors.Is(err, ErrStaleVersion) {
		t.Errorf("stale delete err = %v, want ErrStaleVersion", err)
	}
	if err := s.DeleteTask(rec.ID, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteTask(rec.ID, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}

	recs, _ := s.TasksByUser("u1")
	if len(recs) != 0 {
		t.Errorf("deleted record still listed: %+v", recs)
	}
}

func TestMemoryStoreUsers(t *testing.T) {
	s := newMemoryStore()
	u := User{Email: "a@b.c", Username: "ab", PasswordHash: "x"}
	if err := s.CreateUser(&u); err != nil {
		t.Fatal(err)
	}
	if u.ID == "" {
		t.Error("user id not assigned")
	}

	got, err := s.UserByUsername("ab")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != u.ID {
		t.Errorf("lookup returned %q, want %q", got.ID, u.ID)
	}

	for _, c := range []struct {
		email, username string
		want            bool
	}{
		{"a@b.c", "other", true},
		{"other@b.c", "ab", true},
		{"other@b.c", "other", false},
	} {
		exists, err := s.UserExists(c.email, c.username)
		if err != nil {
			t.Fatal(err)
		}
		if exists != c.want {
			t.Errorf("UserExists(%q, %q) = %v, want %v", c.email, c.username, exists, c.want)
		}
	}

	if _, err := s.UserByUsername("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user err = %v, want ErrNotFound", err)
	}
}
