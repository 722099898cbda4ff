package alerter

import (
	"fmt"

	"tokenwatch/pkg/chainfm"
)

const messageTemplate = "🚨 New token alert:\nName: %s\nContract: `%s`"

// FormatMessage renders the alert text for one token. Missing names and
// addresses were already replaced by chainfm.Unknown while decoding; the
// check here covers records built by hand.
func FormatMessage(token chainfm.TokenRecord) string {
	name, address := token.Name, token.Address
	if name == "" {
		name = chainfm.Unknown
	}
	if address == "" {
		address = chainfm.Unknown
	}
	return fmt.Sprintf(messageTemplate, name, address)
}
