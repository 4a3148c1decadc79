package model

// ImageItem references an object in blob storage. Forms select images by URL.
type ImageItem struct {
	URL  string
	Name string
	Path string
}
