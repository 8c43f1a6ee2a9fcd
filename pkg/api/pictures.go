package api

// UploadResponse представляет ответ на загрузку изображения
type UploadResponse struct {
	URL string `json:"url"` // публичный путь загруженного файла
}
