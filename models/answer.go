package models

// Answer is what the dispatcher produces for one question. Image holds raw PNG
// bytes and is nil for text-only answers.
type Answer struct {
	Text  string
	Image []byte
}

func (a Answer) HasImage() bool {
	return len(a.Image) > 0
}
