// Package businessflow contains the business logic for the application.
package businessflow

// ClientMetadata holds client-related information resolved at the HTTP
// boundary. Address is already the result of the proxy-header resolution
// policy, never a value the flow has to re-derive.
type ClientMetadata struct {
	Address   string `json:"address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance
func NewClientMetadata(address, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		Address:   address,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}
