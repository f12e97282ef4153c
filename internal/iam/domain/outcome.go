package domain

// OutcomeKind enumerates the possible results of a credential verification.
// Exactly one kind applies per attempt.
type OutcomeKind int

const (
	// OutcomeSuccess carries an authenticated principal.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeInvalidCredentials covers both unknown identifiers and wrong
	// passwords; the two are deliberately indistinguishable.
	OutcomeInvalidCredentials

	// OutcomeAccountLocked means the password was never compared.
	OutcomeAccountLocked

	// OutcomeAccountDisabled means the password was never compared.
	OutcomeAccountDisabled
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeInvalidCredentials:
		return "invalid_credentials"
	case OutcomeAccountLocked:
		return "account_locked"
	case OutcomeAccountDisabled:
		return "account_disabled"
	default:
		return "unknown"
	}
}

// Outcome is the typed result of one verification attempt. Principal is set
// only when Kind is OutcomeSuccess.
type Outcome struct {
	Kind      OutcomeKind
	Principal Principal
}

// Succeeded reports whether the attempt authenticated a principal.
func (o Outcome) Succeeded() bool { return o.Kind == OutcomeSuccess }

// SuccessOutcome wraps an authenticated principal.
func SuccessOutcome(p Principal) Outcome {
	return Outcome{Kind: OutcomeSuccess, Principal: p}
}

// FailureOutcome builds a non-success outcome.
func FailureOutcome(kind OutcomeKind) Outcome {
	return Outcome{Kind: kind}
}
