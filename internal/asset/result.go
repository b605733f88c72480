// Package asset defines the generation result handed to the build host.
package asset

import "slices"

// File is a generated text file such as a manifest.
type File struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Result describes one generation: image names, text files, HTML fragments
// and whether it was served from the cache.
type Result struct {
	Images []string `json:"images"`
	Files  []File   `json:"files"`
	HTML   []string `json:"html"`
	Cached bool     `json:"cached"`
}

// Clone returns a deep copy so callers can hand out results without sharing slices.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	return &Result{
		Images: cloneOrEmpty(r.Images),
		Files:  cloneOrEmpty(r.Files),
		HTML:   cloneOrEmpty(r.HTML),
		Cached: r.Cached,
	}
}

// Names lists every asset name (images first, then files) in emission order.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Images)+len(r.Files))
	names = append(names, r.Images...)
	for _, f := range r.Files {
		names = append(names, f.Name)
	}
	return names
}

// HasImage reports whether an image with the given name was generated.
func (r *Result) HasImage(name string) bool {
	return slices.Contains(r.Images, name)
}

// HasFile reports whether a text file with the given name was generated.
func (r *Result) HasFile(name string) bool {
	return slices.ContainsFunc(r.Files, func(f File) bool { return f.Name == name })
}

func cloneOrEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}
