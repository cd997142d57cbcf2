package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// categoryWire is the JSON shape the ledger service speaks for categories.
type categoryWire struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Type  int    `json:"type"`
}

func encodeCategory(c model.Category) (*categoryWire, error) {
	code, err := c.Type.Code()
	if err != nil {
		return nil, err
	}

	return &categoryWire{
		Name:  c.Name,
		Type:  code,
		Color: c.Color,
		Icon:  c.Icon,
	}, nil
}

func (w categoryWire) toModel() model.Category {
	return model.Category{
		ID:    w.ID,
		Name:  w.Name,
		Type:  model.CategoryTypeFromCode(w.Type),
		Color: w.Color,
		Icon:  w.Icon,
	}
}

func (s *Service) fetchCategories(ctx context.Context) ([]model.Category, error) {
	data, err := s.api.Do(ctx, http.MethodGet, "/categories", nil)
	if err != nil {
		return nil, err
	}

	var wires []categoryWire
	if err := json.Unmarshal(data, &wires); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	categories := make([]model.Category, 0, len(wires))
	for _, w := range wires {
		categories = append(categories, w.toModel())
	}

	return categories, nil
}

// Categories returns the cached category collection, refetching when the
// staleness window has elapsed.
func (s *Service) Categories(ctx context.Context) ([]model.Category, error) {
	return s.categories.Get(ctx)
}

// CreateCategory creates a category on the ledger and invalidates the
// category cache. The returned record is the server's response when one
// was sent; the cached collection is only trusted after the next refetch.
func (s *Service) CreateCategory(ctx context.Context, c model.Category) (model.Category, error) {
	body, err := encodeCategory(c)
	if err != nil {
		return model.Category{}, &MutationError{Op: string(opCreate), Kind: "category", Label: c.Name, Err: err}
	}

	data, err := s.api.Do(ctx, http.MethodPost, "/categories", body)
	if err != nil {
		return model.Category{}, &MutationError{Op: string(opCreate), Kind: "category", Label: c.Name, Err: err}
	}

	s.reconcileCategories(opCreate, "")

	created := c
	if len(data) > 0 {
		var w categoryWire
		if err := json.Unmarshal(data, &w); err != nil {
			// The create succeeded and the cache is already invalidated;
			// only the echo of the server record is lost.
			common.LogError(err, "Failed to decode create response", common.Fields{
				"kind":  "category",
				"label": c.Name,
			})
		} else {
			created = w.toModel()
		}
	}

	return created, nil
}

// UpdateCategory replaces all non-identity fields of a category and
// invalidates the category cache. An empty response body is success: the
// canonical record arrives with the next refetch.
func (s *Service) UpdateCategory(ctx context.Context, c model.Category) error {
	body, err := encodeCategory(c)
	if err != nil {
		return &MutationError{Op: string(opUpdate), Kind: "category", Label: c.Name, Err: err}
	}

	if _, err := s.api.Do(ctx, http.MethodPut, "/categories/"+c.ID, body); err != nil {
		return &MutationError{Op: string(opUpdate), Kind: "category", Label: c.Name, Err: err}
	}

	s.reconcileCategories(opUpdate, "")
	return nil
}

// DeleteCategory deletes a category and patches the cache in place. The
// removed category's name is recovered from the pre-delete snapshot and
// returned for reporting.
func (s *Service) DeleteCategory(ctx context.Context, id string) (string, error) {
	var label string
	if c, ok := s.categories.Lookup(id); ok {
		label = c.Name
	}

	if _, err := s.api.Do(ctx, http.MethodDelete, "/categories/"+id, nil); err != nil {
		return "", &MutationError{Op: string(opDelete), Kind: "category", Label: label, Err: err}
	}

	s.reconcileCategories(opDelete, id)
	return label, nil
}

func (s *Service) reconcileCategories(op mutationOp, id string) {
	switch reconciliation[op] {
	case reconcileRefetch:
		s.categories.Invalidate()
	case reconcilePatch:
		s.categories.Remove(id)
	}
}
