package arnak

// The API reports some failures in-band: a 200 response whose body is an
// <errors> document instead of the requested payload. Known messages are
// mapped to typed errors, anything else surfaces as a generic APIError.

const (
	apiMessageInvalidUsername = "Invalid username specified"
)

// checkAPIError inspects a parsed response root and returns a typed error
// if it is an in-band error payload. A nil return means the document is a
// real payload.
func checkAPIError(root *node) error {
	if root.tag() != "errors" {
		return nil
	}

	var messages []string
	for _, e := range root.children("error") {
		if m := e.child("message"); m != nil {
			messages = append(messages, m.text())
		}
	}

	if len(messages) == 1 && messages[0] == apiMessageInvalidUsername {
		return &UnknownUsernameError{}
	}
	return &APIError{Messages: messages}
}
