package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/amolina-dev/postapi/internal/store"
)

func newPostHandler(t *testing.T) (*PostHandler, *store.Memory) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	st := store.NewMemory()
	return NewPostHandler(st, log), st
}

func TestValidateTitle(t *testing.T) {
	cases := []struct {
		title string
		ok    bool
	}{
		{"hello", true},
		{"", false},
		{"   ", false},
		{"\t\n", false},
		{"a", true},
	}
	for _, tc := range cases {
		errs := validateTitle(tc.title)
		if tc.ok && errs != nil {
			t.Fatalf("title %q: unexpected errors %v", tc.title, errs)
		}
		if !tc.ok && errs["title"] == nil {
			t.Fatalf("title %q: expected a title error", tc.title)
		}
	}
}

func TestListPostsPaginationParams(t *testing.T) {
	h, st := newPostHandler(t)
	for i := 0; i < 30; i++ {
		if _, err := st.CreatePost(context.Background(), fmt.Sprintf("post %d", i)); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	list := func(query string) int {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/posts"+query, nil)
		w := httptest.NewRecorder()
		h.ListPosts(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("query %q: code %d", query, w.Code)
		}
		var resp postListResp
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("query %q: unmarshal: %v", query, err)
		}
		return len(resp.Data)
	}

	if n := list(""); n != defaultPerPage {
		t.Fatalf("default page size %d, want %d", n, defaultPerPage)
	}
	if n := list("?per_page=5"); n != 5 {
		t.Fatalf("per_page=5 returned %d", n)
	}
	if n := list("?per_page=500"); n != 30 {
		t.Fatalf("capped per_page returned %d, want all 30", n)
	}
	if n := list("?page=0&per_page=-3"); n != defaultPerPage {
		t.Fatalf("garbage params returned %d, want %d", n, defaultPerPage)
	}
	if n := list("?page=3&per_page=14"); n != 2 {
		t.Fatalf("last page returned %d, want 2", n)
	}
}
