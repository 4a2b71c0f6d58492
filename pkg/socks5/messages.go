package socks5

// ClientGreeting is the first client->server message listing every
// authentication method the client is willing to use.
type ClientGreeting struct {
	Methods []AuthMethod
}

// SelectedMethod is the server's reply to a ClientGreeting, naming the one
// method it picked (or MethodNoAcceptable).
type SelectedMethod struct {
	Method AuthMethod
}

// ClientRequest is the client's CONNECT/BIND/UDP_ASSOCIATE request once
// authentication has completed.
type ClientRequest struct {
	Command Command
	Address Address
}

// ServerResponse is the server's reply to a ClientRequest.
type ServerResponse struct {
	Reply        ReplyCode
	BoundAddress Address
}
