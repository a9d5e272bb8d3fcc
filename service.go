package mdx

import "github.com/quantfold/mdx/native"

// Service is a handle on a service opened through a session. It stays
// valid until the session is destroyed.
type Service struct {
	ptr *native.Service
}

// Name returns the service URI.
func (s *Service) Name() string {
	return native.ServiceName(s.ptr)
}

// CreateRequest allocates a request for one of the service's operations.
func (s *Service) CreateRequest(operation string) (*Request, error) {
	var out *native.Request
	if code := native.ServiceCreateRequest(s.ptr, &out, operation); code != native.StatusOK {
		return nil, statusError(code)
	}
	return &Request{ptr: out}, nil
}
