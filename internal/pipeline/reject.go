package pipeline

// RejectKind classifies why the receiver terminated a request. The API layer
// maps each kind onto its HTTP status and error code.
type RejectKind int

const (
	KindMalformed RejectKind = iota
	KindMissing
	KindUnsupported
	KindOversized
	KindMismatch
	KindInsufficient
)

// Reject is the single terminal rejection the receiver produces for a
// request. A request never yields both a Reject and a ConversionRequest.
type Reject struct {
	Kind    RejectKind
	Message string
}

func (r *Reject) Error() string {
	return r.Message
}
