package socks5

// AuthResultKind discriminates what an AuthenticationDelegate wants the
// handshake handler to do next (spec §4.H's AuthResult).
type AuthResultKind int

const (
	AuthNeedsMoreData AuthResultKind = iota
	AuthRespond
	AuthFailed
	AuthComplete
)

// AuthResult is the outcome of one step of an authentication sub-protocol.
// Bytes is only meaningful when Kind == AuthRespond.
type AuthResult struct {
	Kind  AuthResultKind
	Bytes []byte
}

// AuthenticationDelegate plugs an authentication sub-protocol into the
// handshake. SupportedMethods advertises (client) or ranks (server) the
// methods understood; ServerSelectedMethod reacts to the peer's choice;
// HandleIncoming drives any further bytes the method's exchange requires.
type AuthenticationDelegate interface {
	SupportedMethods() []AuthMethod
	ServerSelectedMethod(method AuthMethod) AuthResult
	HandleIncoming(buf *[]byte) AuthResult
}

// NoAuthDelegate offers only MethodNone and completes as soon as it is
// selected; it never expects further bytes.
type NoAuthDelegate struct{}

func (NoAuthDelegate) SupportedMethods() []AuthMethod { return []AuthMethod{MethodNone} }

func (NoAuthDelegate) ServerSelectedMethod(method AuthMethod) AuthResult {
	if method != MethodNone {
		return AuthResult{Kind: AuthFailed}
	}
	return AuthResult{Kind: AuthComplete}
}

func (NoAuthDelegate) HandleIncoming(*[]byte) AuthResult {
	return AuthResult{Kind: AuthFailed}
}

func containsMethod(methods []AuthMethod, m AuthMethod) bool {
	for _, candidate := range methods {
		if candidate == m {
			return true
		}
	}
	return false
}
