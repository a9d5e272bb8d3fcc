package native

// SessionOptions carries connection parameters. The emulated runtime reads
// none of them on the wire but keeps them inspectable for tests.
type SessionOptions struct {
	ServerHost              string
	ServerPort              uint16
	ConnectTimeoutMs        uint32
	DefaultSubscriptionSvc  string
	DefaultServices         string
	AuthenticationOptions   string
	AutoRestartOnDisconnect bool
	NumStartAttempts        int
	MaxPendingRequests      int
	TLS                     *TLSOptions
}

func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		ServerHost:         "127.0.0.1",
		ServerPort:         8194,
		ConnectTimeoutMs:   5000,
		NumStartAttempts:   1,
		MaxPendingRequests: 1024,
	}
}

// TLSOptions holds client credentials and trust material, either as file
// paths or as in-memory DER blobs.
type TLSOptions struct {
	ClientCredentialsPath     string
	ClientCredentialsPassword string
	ClientCredentialsBlob     []byte
	TrustMaterialPath         string
	TrustMaterialBlob         []byte
	HandshakeTimeoutMs        uint32
	CRLFetchTimeoutMs         uint32
}

// Identity is an authorization handle. The emulated runtime authorizes
// everything; the handle exists so request routing carries one.
type Identity struct {
	authorized bool
}

func IdentityCreate() *Identity { return &Identity{authorized: true} }

func IdentityIsAuthorized(id *Identity, svc *Service) bool {
	return id != nil && id.authorized
}

type subscriptionEntry struct {
	topic string
	cid   CorrelationID
}

// SubscriptionList is an ordered batch of topic subscriptions, each tagged
// with the correlation id its data events will carry.
type SubscriptionList struct {
	entries []subscriptionEntry
}

func SubscriptionListCreate() *SubscriptionList { return &SubscriptionList{} }

func SubscriptionListAdd(l *SubscriptionList, topic string, cid CorrelationID) int32 {
	if topic == "" {
		return ErrorIllegalArg
	}
	l.entries = append(l.entries, subscriptionEntry{topic: topic, cid: cid})
	return StatusOK
}

func SubscriptionListSize(l *SubscriptionList) int { return len(l.entries) }

func SubscriptionListTopicAt(l *SubscriptionList, index int) (string, int32) {
	if index < 0 || index >= len(l.entries) {
		return "", ErrorIndexOutOfRange
	}
	return l.entries[index].topic, StatusOK
}

func SubscriptionListCorrelationIDAt(l *SubscriptionList, index int) (CorrelationID, int32) {
	if index < 0 || index >= len(l.entries) {
		return CorrelationID{}, ErrorIndexOutOfRange
	}
	return l.entries[index].cid, StatusOK
}
