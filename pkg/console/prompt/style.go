// ABOUTME: Prompt styles and statuses: named input modes fixing echo and validation behavior.
// ABOUTME: Styles are applied by the New* builders; Status is the outcome of one Execute call.

package prompt

// Style is a named input mode. Each style fixes default echo behavior
// and commit-time validation.
type Style int

const (
	// StyleText is a plain visible single-line input.
	StyleText Style = iota
	// StylePassword echoes every character as '*'.
	StylePassword
	// StyleSecret echoes nothing at all.
	StyleSecret
	// StyleFilename rejects path separators and filename-illegal characters.
	StyleFilename
	// StylePath rejects a narrower illegal set, allowing separators.
	StylePath
	// StyleConfirm accepts only the configured yes/no literals.
	StyleConfirm
	// StyleAnyKey reads exactly one key and returns it.
	StyleAnyKey
)

// String returns the style name for diagnostics.
func (s Style) String() string {
	switch s {
	case StyleText:
		return "Text"
	case StylePassword:
		return "Password"
	case StyleSecret:
		return "Secret"
	case StyleFilename:
		return "Filename"
	case StylePath:
		return "Path"
	case StyleConfirm:
		return "Confirm"
	case StyleAnyKey:
		return "AnyKey"
	}
	return "Unknown"
}

// Status is the outcome of one Execute call.
type Status int

const (
	// StatusWaiting means Execute has not finished (the initial state).
	StatusWaiting Status = iota
	// StatusEscaped means the user abandoned the prompt; there is no value.
	StatusEscaped
	// StatusEntered means a value was committed.
	StatusEntered
	// StatusYes is a confirm-style commit matching the yes literal.
	StatusYes
	// StatusNo is a confirm-style commit matching the no literal.
	StatusNo
)

// String returns the status name for diagnostics.
func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "Waiting"
	case StatusEscaped:
		return "Escaped"
	case StatusEntered:
		return "Entered"
	case StatusYes:
		return "Yes"
	case StatusNo:
		return "No"
	}
	return "Unknown"
}

// historyEligible reports whether committed inputs of this style are
// recorded in the shared history. Secret-bearing and literal-answer
// styles never are.
func (s Style) historyEligible() bool {
	switch s {
	case StyleText, StyleFilename, StylePath:
		return true
	}
	return false
}

// echoes reports whether the style echoes typed characters at all.
func (s Style) echoes() bool {
	return s != StyleSecret
}

// masked reports whether echoed characters are replaced with '*'.
func (s Style) masked() bool {
	return s == StylePassword
}
