package service

import (
	"testing"

	"github.com/Khushi2755/academix/internal/model"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

func TestSearchDocumentStripsMarkup(t *testing.T) {
	s := &searchService{sanitizer: bluemonday.StrictPolicy()}

	club := &model.Club{
		ID:          uuid.New(),
		Name:        `Chess <script>alert("x")</script>Club`,
		Description: `<img src=x onerror=steal()>Weekly games`,
		Coordinator: model.User{Name: "<b>Ravi</b>"},
	}

	doc := s.document(club)
	if doc.Name != "Chess Club" {
		t.Fatalf("name = %q", doc.Name)
	}
	if doc.Description != "Weekly games" {
		t.Fatalf("description = %q", doc.Description)
	}
	if doc.Coordinator != "Ravi" {
		t.Fatalf("coordinator = %q", doc.Coordinator)
	}
	if doc.ID != club.ID.String() {
		t.Fatalf("id = %q", doc.ID)
	}
}

func TestSearchDocumentKeepsPlainText(t *testing.T) {
	s := &searchService{sanitizer: bluemonday.StrictPolicy()}

	club := &model.Club{
		ID:          uuid.New(),
		Name:        "Debate & Rhetoric Society",
		Description: "Mondays at 6pm",
		Coordinator: model.User{Name: "Mina"},
	}

	doc := s.document(club)
	if doc.Name != "Debate &amp; Rhetoric Society" {
		t.Fatalf("name = %q", doc.Name)
	}
	if doc.Description != "Mondays at 6pm" {
		t.Fatalf("description = %q", doc.Description)
	}
}
