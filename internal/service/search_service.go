package service

import (
	"encoding/json"
	"log"

	"github.com/Khushi2755/academix/internal/dto"
	"github.com/Khushi2755/academix/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const clubIndex = "clubs"

type SearchService interface {
	IndexClub(club *model.Club) error
	DeleteClub(id string) error
	SearchClubs(query string) ([]dto.ClubDocument, error)
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndex()
	return s
}

func (s *searchService) initIndex() {
	sortable := []string{"created_at"}
	if _, err := s.client.Index(clubIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update clubs sortable attributes: %v", err)
	}
}

func (s *searchService) IndexClub(club *model.Club) error {
	doc := s.document(club)

	_, err := s.client.Index(clubIndex).AddDocuments([]dto.ClubDocument{doc}, strPtr("id"))
	return err
}

// document strips any markup from user-supplied fields before they reach
// the index; search results are rendered untrusted.
func (s *searchService) document(club *model.Club) dto.ClubDocument {
	return dto.ClubDocument{
		ID:          club.ID.String(),
		Name:        s.sanitizer.Sanitize(club.Name),
		Description: s.sanitizer.Sanitize(club.Description),
		Coordinator: s.sanitizer.Sanitize(club.Coordinator.Name),
		CreatedAt:   club.CreatedAt.Unix(),
	}
}

func (s *searchService) DeleteClub(id string) error {
	_, err := s.client.Index(clubIndex).DeleteDocument(id)
	return err
}

func (s *searchService) SearchClubs(query string) ([]dto.ClubDocument, error) {
	resp, err := s.client.Index(clubIndex).Search(query, &meilisearch.SearchRequest{
		Limit: 20,
	})
	if err != nil {
		return nil, err
	}

	docs := make([]dto.ClubDocument, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		fields := make(map[string]any, len(hit))
		for k, raw := range hit {
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				continue
			}
			fields[k] = v
		}
		doc := dto.ClubDocument{}
		if v, ok := fields["id"].(string); ok {
			doc.ID = v
		}
		if v, ok := fields["name"].(string); ok {
			doc.Name = v
		}
		if v, ok := fields["description"].(string); ok {
			doc.Description = v
		}
		if v, ok := fields["coordinator"].(string); ok {
			doc.Coordinator = v
		}
		if v, ok := fields["created_at"].(float64); ok {
			doc.CreatedAt = int64(v)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func strPtr(s string) *string {
	return &s
}
