package mdx

import "github.com/quantfold/mdx/native"

// Identity is an authorization handle passed alongside requests and
// subscriptions. Obtain one from Session.CreateIdentity.
type Identity struct {
	ptr *native.Identity
}

// IsAuthorized reports whether the identity may use svc.
func (id *Identity) IsAuthorized(svc *Service) bool {
	return native.IdentityIsAuthorized(id.ptr, svc.ptr)
}
