package render

import (
	"context"
	"sync"
)

// Fake is a Renderer returning a canned response. It records every request.
type Fake struct {
	mu       sync.Mutex
	response *Response
	err      error
	requests []Request
}

// NewFake returns a renderer that answers every call with a copy of resp.
func NewFake(resp *Response) *Fake {
	return &Fake{response: resp}
}

// FailWith makes subsequent renders return err.
func (f *Fake) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// Render implements Renderer.
func (f *Fake) Render(ctx context.Context, _ []byte, req Request) (*Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.response == nil {
		return &Response{}, nil
	}
	out := &Response{
		Images: append([]Image(nil), f.response.Images...),
		Files:  append([]File(nil), f.response.Files...),
		HTML:   append([]string(nil), f.response.HTML...),
	}
	return out, nil
}

// Calls returns how many times Render ran.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// Requests returns the recorded requests.
func (f *Fake) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}
