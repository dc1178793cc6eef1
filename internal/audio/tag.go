package audio

import (
	"fmt"

	"github.com/bogem/id3v2/v2"
)

// Tags is the metadata written onto the rendered file.
type Tags struct {
	Artist string
	Title  string
}

// Tagger writes Tags onto an encoded file in place.
type Tagger interface {
	Tag(path string, tags Tags) error
}

// ID3Tagger writes ID3v2.4 artist (TPE1) and title (TIT2) frames.
type ID3Tagger struct{}

func (ID3Tagger) Tag(path string, tags Tags) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open id3 tag: %w", err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetArtist(tags.Artist)
	tag.SetTitle(tags.Title)
	if err := tag.Save(); err != nil {
		return fmt.Errorf("save id3 tag: %w", err)
	}
	return nil
}
