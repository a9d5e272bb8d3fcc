package mdx

import "github.com/quantfold/mdx/native"

// TLSOptions holds the client credentials and trust material of a TLS
// connection. Build one with the file-based or blob-based constructor and
// attach it via SessionOptions.SetTLSOptions.
type TLSOptions struct {
	raw native.TLSOptions
}

// TLSOptionsFromFiles reads credentials from a PKCS#12 file and trust
// material from a PKCS#7 file at connect time.
func TLSOptionsFromFiles(clientCredentials, password, trustMaterial string) *TLSOptions {
	return &TLSOptions{raw: native.TLSOptions{
		ClientCredentialsPath:     clientCredentials,
		ClientCredentialsPassword: password,
		TrustMaterialPath:         trustMaterial,
	}}
}

// TLSOptionsFromBlobs takes credentials and trust material already in
// memory. The slices are copied.
func TLSOptionsFromBlobs(clientCredentials []byte, password string, trustMaterial []byte) *TLSOptions {
	creds := make([]byte, len(clientCredentials))
	copy(creds, clientCredentials)
	trust := make([]byte, len(trustMaterial))
	copy(trust, trustMaterial)
	return &TLSOptions{raw: native.TLSOptions{
		ClientCredentialsBlob:     creds,
		ClientCredentialsPassword: password,
		TrustMaterialBlob:         trust,
	}}
}

func (t *TLSOptions) SetHandshakeTimeoutMs(ms uint32) *TLSOptions {
	t.raw.HandshakeTimeoutMs = ms
	return t
}

func (t *TLSOptions) SetCRLFetchTimeoutMs(ms uint32) *TLSOptions {
	t.raw.CRLFetchTimeoutMs = ms
	return t
}
