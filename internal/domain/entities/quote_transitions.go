package entities

import "fmt"

// QuoteEvent is an action attempted on a quote.
type QuoteEvent string

const (
	QuoteEventSubmitOffer    QuoteEvent = "submit_offer"
	QuoteEventAccept         QuoteEvent = "accept"
	QuoteEventStartWork      QuoteEvent = "start_work"
	QuoteEventValidate       QuoteEvent = "validate"
	QuoteEventRaiseDispute   QuoteEvent = "raise_dispute"
	QuoteEventCancel         QuoteEvent = "cancel"
	QuoteEventResolveRelease QuoteEvent = "resolve_release"
	QuoteEventResolveRefund  QuoteEvent = "resolve_refund"
)

// SideEffect is a payment action the orchestrator must perform, in order,
// before the destination status may be persisted.
type SideEffect string

const (
	EffectAuthorizePayment  SideEffect = "authorize_payment"
	EffectCapturePayment    SideEffect = "capture_payment"
	EffectReleaseFunds      SideEffect = "release_funds"
	EffectVoidAuthorization SideEffect = "void_authorization"
	EffectSuspendRelease    SideEffect = "suspend_release"
	EffectRefundPayment     SideEffect = "refund_payment"
)

type QuoteTransition struct {
	From    QuoteStatus
	Event   QuoteEvent
	To      QuoteStatus
	Effects []SideEffect
}

type transitionKey struct {
	from  QuoteStatus
	event QuoteEvent
}

var quoteTransitions = map[transitionKey]QuoteTransition{}

func init() {
	for _, t := range []QuoteTransition{
		{From: QuoteStatusPending, Event: QuoteEventSubmitOffer, To: QuoteStatusQuoted},
		{From: QuoteStatusQuoted, Event: QuoteEventAccept, To: QuoteStatusAccepted, Effects: []SideEffect{EffectAuthorizePayment}},
		{From: QuoteStatusAccepted, Event: QuoteEventStartWork, To: QuoteStatusInProgress},
		{From: QuoteStatusInProgress, Event: QuoteEventValidate, To: QuoteStatusCompleted, Effects: []SideEffect{EffectCapturePayment, EffectReleaseFunds}},
		{From: QuoteStatusAccepted, Event: QuoteEventRaiseDispute, To: QuoteStatusDisputed, Effects: []SideEffect{EffectSuspendRelease}},
		{From: QuoteStatusInProgress, Event: QuoteEventRaiseDispute, To: QuoteStatusDisputed, Effects: []SideEffect{EffectSuspendRelease}},
		{From: QuoteStatusPending, Event: QuoteEventCancel, To: QuoteStatusCancelled, Effects: []SideEffect{EffectVoidAuthorization}},
		{From: QuoteStatusQuoted, Event: QuoteEventCancel, To: QuoteStatusCancelled, Effects: []SideEffect{EffectVoidAuthorization}},
		{From: QuoteStatusDisputed, Event: QuoteEventResolveRelease, To: QuoteStatusCompleted, Effects: []SideEffect{EffectCapturePayment, EffectReleaseFunds}},
		{From: QuoteStatusDisputed, Event: QuoteEventResolveRefund, To: QuoteStatusCancelled, Effects: []SideEffect{EffectRefundPayment}},
	} {
		quoteTransitions[transitionKey{from: t.From, event: t.Event}] = t
	}
}

// NextQuoteStatus looks up the transition for event from the given status.
// It has no side effects; callers execute the returned effects.
func NextQuoteStatus(from QuoteStatus, event QuoteEvent) (QuoteTransition, error) {
	t, ok := quoteTransitions[transitionKey{from: from, event: event}]
	if !ok {
		return QuoteTransition{}, fmt.Errorf("%w: cannot %s a quote in status %q", ErrPrecondition, event, from)
	}
	out := t
	out.Effects = append([]SideEffect(nil), t.Effects...)
	return out, nil
}

// QuoteTransitions returns a copy of the transition table.
func QuoteTransitions() []QuoteTransition {
	out := make([]QuoteTransition, 0, len(quoteTransitions))
	for _, t := range quoteTransitions {
		t.Effects = append([]SideEffect(nil), t.Effects...)
		out = append(out, t)
	}
	return out
}

// HasEffect reports whether the transition requires the given effect.
func (t QuoteTransition) HasEffect(e SideEffect) bool {
	for _, x := range t.Effects {
		if x == e {
			return true
		}
	}
	return false
}
