package mdx

import "github.com/quantfold/mdx/native"

// SessionOptions configures a session before it is created. The zero value
// is not useful; start from NewSessionOptions.
type SessionOptions struct {
	raw native.SessionOptions
}

func NewSessionOptions() *SessionOptions {
	return &SessionOptions{raw: native.DefaultSessionOptions()}
}

// SetServerAddress points the session at a single endpoint.
func (o *SessionOptions) SetServerAddress(host string, port uint16) *SessionOptions {
	o.raw.ServerHost = host
	o.raw.ServerPort = port
	return o
}

func (o *SessionOptions) ServerHost() string { return o.raw.ServerHost }

func (o *SessionOptions) ServerPort() uint16 { return o.raw.ServerPort }

func (o *SessionOptions) SetConnectTimeoutMs(ms uint32) *SessionOptions {
	o.raw.ConnectTimeoutMs = ms
	return o
}

// SetDefaultSubscriptionService names the service used for subscriptions
// that do not carry an explicit service prefix.
func (o *SessionOptions) SetDefaultSubscriptionService(uri string) *SessionOptions {
	o.raw.DefaultSubscriptionSvc = uri
	return o
}

// SetDefaultServices lists services to open automatically on start.
func (o *SessionOptions) SetDefaultServices(services string) *SessionOptions {
	o.raw.DefaultServices = services
	return o
}

func (o *SessionOptions) SetAuthenticationOptions(auth string) *SessionOptions {
	o.raw.AuthenticationOptions = auth
	return o
}

func (o *SessionOptions) SetAutoRestartOnDisconnection(v bool) *SessionOptions {
	o.raw.AutoRestartOnDisconnect = v
	return o
}

func (o *SessionOptions) SetNumStartAttempts(n int) *SessionOptions {
	o.raw.NumStartAttempts = n
	return o
}

func (o *SessionOptions) SetMaxPendingRequests(n int) *SessionOptions {
	o.raw.MaxPendingRequests = n
	return o
}

// SetTLSOptions installs client TLS credentials and trust material.
func (o *SessionOptions) SetTLSOptions(tls *TLSOptions) *SessionOptions {
	if tls == nil {
		o.raw.TLS = nil
		return o
	}
	raw := tls.raw
	o.raw.TLS = &raw
	return o
}
