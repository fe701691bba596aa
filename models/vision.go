package models

import "errors"

type VisionItemType string

const (
	VisionImage VisionItemType = "image"
	VisionVideo VisionItemType = "video"
)

// VisionItem is one generated board entry. Timestamp is unix milliseconds.
type VisionItem struct {
	ID        string         `json:"id"`
	Type      VisionItemType `json:"type"`
	URL       string         `json:"url"`
	Prompt    string         `json:"prompt"`
	Timestamp int64          `json:"timestamp"`
}

// VisionBoard is the list stored under "vision-board", oldest first.
type VisionBoard []VisionItem

func (b VisionBoard) Validate() error {
	for _, it := range b {
		if it.ID == "" || it.URL == "" {
			return errors.New("vision item needs an id and a url")
		}
	}
	return nil
}
