package gateway

type sessionKey string

const (
	sessionKeyVisitor = sessionKey("visitor")
)

func (s sessionKey) String() string {
	return string(s)
}
