package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/iudanet/urugendo/pkg/api"
)

// CreateExperience создает новый experience
func (c *Client) CreateExperience(ctx context.Context, req api.CreateExperienceRequest) (*api.Experience, error) {
	var exp api.Experience
	if err := c.doRequest(ctx, "POST", "/experiences/", req, &exp); err != nil {
		return nil, err
	}
	return &exp, nil
}

// GetExperienceByID возвращает experience по ID
func (c *Client) GetExperienceByID(ctx context.Context, id string) (*api.Experience, error) {
	var exp api.Experience
	if err := c.doRequest(ctx, "GET", fmt.Sprintf("/experiences/%s/", id), nil, &exp); err != nil {
		return nil, err
	}
	return &exp, nil
}

// GetAllExperiences возвращает пагинированный список experiences
func (c *Client) GetAllExperiences(ctx context.Context, query *api.ExperienceQuery) (*api.Paginated[api.Experience], error) {
	path := "/experiences/"
	if query != nil {
		params := map[string]string{
			"ordering":       query.Ordering,
			"expertise":      query.Expertise,
			"expertise_name": query.ExpertiseName,
		}
		if query.Page > 1 {
			params["page"] = strconv.Itoa(query.Page)
		}
		path += encodeQuery(params)
	}

	var page api.Paginated[api.Experience]
	if err := c.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdateExperienceFull полностью обновляет experience
func (c *Client) UpdateExperienceFull(ctx context.Context, id string, req api.CreateExperienceRequest) (*api.Experience, error) {
	var exp api.Experience
	if err := c.doRequest(ctx, "PUT", fmt.Sprintf("/experiences/%s/", id), req, &exp); err != nil {
		return nil, err
	}
	return &exp, nil
}

// UpdateExperiencePartial частично обновляет experience
func (c *Client) UpdateExperiencePartial(ctx context.Context, id string, req api.PatchExperienceRequest) (*api.Experience, error) {
	var exp api.Experience
	if err := c.doRequest(ctx, "PATCH", fmt.Sprintf("/experiences/%s/", id), req, &exp); err != nil {
		return nil, err
	}
	return &exp, nil
}

// DeleteExperience удаляет experience
func (c *Client) DeleteExperience(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, "DELETE", fmt.Sprintf("/experiences/%s/", id), nil, nil); err != nil {
		return fmt.Errorf("delete experience request failed: %w", err)
	}
	return nil
}

// CreateExperienceSlot создает слот для experience
func (c *Client) CreateExperienceSlot(ctx context.Context, experienceID string, req api.SlotRequest) (*api.Slot, error) {
	var slot api.Slot
	path := fmt.Sprintf("/experiences/%s/slots/", experienceID)
	if err := c.doRequest(ctx, "POST", path, req, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

// GetExperienceSlots возвращает слоты experience
func (c *Client) GetExperienceSlots(ctx context.Context, experienceID string) ([]api.Slot, error) {
	var slots []api.Slot
	path := fmt.Sprintf("/experiences/%s/slots/", experienceID)
	if err := c.doRequest(ctx, "GET", path, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// GetSlotByID возвращает слот по ID
func (c *Client) GetSlotByID(ctx context.Context, experienceID, slotID string) (*api.Slot, error) {
	var slot api.Slot
	path := fmt.Sprintf("/experiences/%s/slots/%s/", experienceID, slotID)
	if err := c.doRequest(ctx, "GET", path, nil, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

// UpdateExperienceSlotFull полностью обновляет слот
func (c *Client) UpdateExperienceSlotFull(ctx context.Context, experienceID, slotID string, req api.SlotRequest) (*api.Slot, error) {
	var slot api.Slot
	path := fmt.Sprintf("/experiences/%s/slots/%s/", experienceID, slotID)
	if err := c.doRequest(ctx, "PUT", path, req, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

// DeleteExperienceSlot удаляет слот
func (c *Client) DeleteExperienceSlot(ctx context.Context, experienceID, slotID string) error {
	path := fmt.Sprintf("/experiences/%s/slots/%s/", experienceID, slotID)
	if err := c.doRequest(ctx, "DELETE", path, nil, nil); err != nil {
		return fmt.Errorf("delete slot request failed: %w", err)
	}
	return nil
}
