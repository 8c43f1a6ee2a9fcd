package api

import (
	"context"
	"io"

	"github.com/iudanet/urugendo/pkg/api"
)

// GeocodeLocation превращает название места в координаты
func (c *Client) GeocodeLocation(ctx context.Context, placeName string) (*api.LocationData, error) {
	var data api.LocationData
	req := api.GeocodeRequest{PlaceName: placeName}
	if err := c.doRequest(ctx, "POST", "/locations/geocode/", req, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// SaveLocation сохраняет результат геокодирования
func (c *Client) SaveLocation(ctx context.Context, data api.LocationData) (*api.Location, error) {
	var loc api.Location
	if err := c.doRequest(ctx, "POST", "/locations/save/", data, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// GetChoices возвращает справочник по имени (languages, payments,
// travel_preferences, payment_statuses, mobile_providers)
func (c *Client) GetChoices(ctx context.Context, kind string) ([]api.ChoiceOption, error) {
	var options []api.ChoiceOption
	if err := c.doRequest(ctx, "GET", "/choices/"+kind+"/", nil, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// UploadProfilePicture загружает аватар пользователя
func (c *Client) UploadProfilePicture(ctx context.Context, filename string, file io.Reader) (*api.UploadResponse, error) {
	var resp api.UploadResponse
	if err := c.doUpload(ctx, "/pictures/upload/profile/", filename, file, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadExperiencePicture загружает фотографию experience
func (c *Client) UploadExperiencePicture(ctx context.Context, filename string, file io.Reader) (*api.UploadResponse, error) {
	var resp api.UploadResponse
	if err := c.doUpload(ctx, "/pictures/upload/experience/", filename, file, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
