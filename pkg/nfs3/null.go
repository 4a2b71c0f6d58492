package nfs3

// NullCall and NullReply carry no data (RFC 1813 §3.3.0): NULL is used only
// to probe server reachability.
type NullCall struct{}
type NullReply struct{}

func DecodeNullCall(args []byte) (NullCall, error)   { return NullCall{}, nil }
func EncodeNullCall(NullCall) []byte                 { return nil }
func DecodeNullReply(body []byte) (NullReply, error) { return NullReply{}, nil }
func EncodeNullReply(NullReply) []byte               { return nil }
